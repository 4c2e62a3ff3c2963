package repositories

import (
	"context"
	"database/sql"
	"errors"
	"flare-label-service/internal/domain"
	"flare-label-service/internal/platform/obs"
	"fmt"
)

// database/sql implementation of the SiteRepository port.
// The query is portable, so it serves both SQLite and Postgres.
type SQLSiteRepository struct{ DB *sql.DB }

func NewSQLSiteRepository(db *sql.DB) *SQLSiteRepository {
	return &SQLSiteRepository{DB: db}
}

// Return all sites stored in the database.
func (s *SQLSiteRepository) ListSites(ctx context.Context) (_ []*domain.Site, err error) {
	defer obs.Time(ctx, "sites.ListSites")(&err)

	if s.DB == nil {
		return nil, errors.New("site repository: DB is nil")
	}

	query := `
	SELECT
		site_id,
		name,
		lat,
		lon
	FROM sites
	ORDER BY site_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sites: query sites table: %w", err)
	}
	defer rows.Close()

	sites := make([]*domain.Site, 0, 64)
	for rows.Next() {
		var id int
		var name string
		var lat, lon float64
		if err := rows.Scan(&id, &name, &lat, &lon); err != nil {
			return nil, fmt.Errorf("list sites: scan row: %w", err)
		}
		sites = append(sites, &domain.Site{
			SiteID:      id,
			Name:        name,
			Coordinates: domain.Coordinates{Lon: lon, Lat: lat},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sites: row iteration: %w", err)
	}

	return sites, nil
}
