package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flare-label-service/internal/domain"
	"fmt"
	"os"
	"strings"
)

// SQL flavor of the target database. Only placeholders differ.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// placeholders returns n bind parameters in the dialect's syntax.
func (d Dialect) placeholders(n int) []string {
	ph := make([]string, n)
	for i := range ph {
		if d == Postgres {
			ph[i] = fmt.Sprintf("$%d", i+1)
		} else {
			ph[i] = "?"
		}
	}
	return ph
}

// Initialize the database schema. The statements are valid on both SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSitesQuery := `
	CREATE TABLE IF NOT EXISTS sites (
		site_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	createLabelCacheQuery := `
	CREATE TABLE IF NOT EXISTS label_cache (
        cache_key TEXT PRIMARY KEY,
        label TEXT NOT NULL
    );
	`

	statements := []string{
		createSitesQuery,
		createLabelCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type SiteSeed struct {
	SiteID int     `json:"site_id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Populate the database with site data from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed sites: read %q: %w", jsonPath, err)
	}

	var data []SiteSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed sites: parse json: %w", err)
	}

	return SeedSites(ctx, db, dialect, data)
}

// Upsert the given sites after validating ids, names and coordinates.
func SeedSites(ctx context.Context, db *sql.DB, dialect Dialect, data []SiteSeed) error {
	if db == nil {
		return errors.New("seed sites: DB is nil")
	}

	rows := make([]SiteSeed, 0, len(data))
	for i, item := range data {
		if item.SiteID <= 0 {
			return fmt.Errorf("seed sites: invalid site_id at index %d: %d", i+1, item.SiteID)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed sites: item name at index %d: name cannot be empty", i+1)
		}

		c := domain.Coordinates{Lon: item.Lon, Lat: item.Lat}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("seed sites: site_id=%d: %w", item.SiteID, err)
		}
		rows = append(rows, SiteSeed{SiteID: item.SiteID, Name: name, Lat: item.Lat, Lon: item.Lon})
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed sites: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ph := dialect.placeholders(4)
	query := fmt.Sprintf(`
	INSERT INTO sites (
		site_id,
		name,
		lat,
		lon
	)
	VALUES (%s)
	ON CONFLICT (site_id) DO UPDATE
	SET name = excluded.name,
		lat = excluded.lat,
		lon = excluded.lon;
	`, strings.Join(ph, ", "))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed sites: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range rows {
		if _, err := stmt.ExecContext(ctx, s.SiteID, s.Name, s.Lat, s.Lon); err != nil {
			return fmt.Errorf("seed sites: insert site_id=%d: %w", s.SiteID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed sites: commit tx: %w", err)
	}

	return nil
}
