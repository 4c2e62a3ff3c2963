package cache

import (
	"context"
	"database/sql"
	"errors"
	"flare-label-service/internal/platform/obs"
	"fmt"
	"strings"
)

// SQLLabelCache is a Postgres-backed label cache (pgx stdlib driver).
type SQLLabelCache struct {
	DB *sql.DB
}

func NewSQLLabelCache(db *sql.DB) *SQLLabelCache {
	return &SQLLabelCache{DB: db}
}

// Fetch cached labels for the given keys.
func (s *SQLLabelCache) GetMany(ctx context.Context, keys []string) (_ map[string]string, err error) {
	defer obs.Time(ctx, "label.cache.sql.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("label cache: db is nil")
	}

	uniq := uniqueKeys(keys)
	if len(uniq) == 0 {
		return map[string]string{}, nil
	}

	q := `
	SELECT cache_key, label
    FROM label_cache
    WHERE cache_key = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get label cache: query label_cache table: %w", err)
	}
	defer rows.Close()

	return scanLabels(rows, len(uniq))
}

// Store key -> label mappings in the cache.
func (s *SQLLabelCache) PutMany(ctx context.Context, labels map[string]string) error {
	if s.DB == nil {
		return errors.New("label cache: db is nil")
	}

	if len(labels) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert label cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO label_cache (cache_key, label)
    VALUES ($1, $2)
	ON CONFLICT (cache_key) DO UPDATE
	SET label = EXCLUDED.label;
	`)
	if err != nil {
		return fmt.Errorf("insert label cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, label := range labels {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert label cache: empty cache key")
		}

		if _, err := stmt.ExecContext(ctx, key, label); err != nil {
			return fmt.Errorf("insert label cache key=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert label cache commit: %w", err)
	}

	return nil
}
