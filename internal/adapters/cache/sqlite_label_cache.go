package cache

import (
	"context"
	"database/sql"
	"errors"
	"flare-label-service/internal/platform/obs"
	"fmt"
	"strings"
)

// SQLite backed cache mapping label cache keys to rendered labels.
type SqliteLabelCache struct {
	DB *sql.DB
}

func NewSqliteLabelCache(db *sql.DB) *SqliteLabelCache {
	return &SqliteLabelCache{DB: db}
}

// Fetch cached labels for the given keys.
func (s *SqliteLabelCache) GetMany(ctx context.Context, keys []string) (_ map[string]string, err error) {
	defer obs.Time(ctx, "label.cache.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("label cache: db is nil")
	}

	uniq := uniqueKeys(keys)
	if len(uniq) == 0 {
		return map[string]string{}, nil
	}

	ph := make([]string, 0, len(uniq))
	args := make([]any, 0, len(uniq))
	for _, k := range uniq {
		ph = append(ph, "?")
		args = append(args, k)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
        cache_key,
        label
    FROM label_cache
    WHERE cache_key IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get label cache: query label_cache table: %w", err)
	}
	defer rows.Close()

	return scanLabels(rows, len(uniq))
}

// Store key -> label mappings in the cache.
func (s *SqliteLabelCache) PutMany(ctx context.Context, labels map[string]string) error {
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
	INSERT OR REPLACE INTO label_cache (
        cache_key,
        label
    )
    VALUES (?, ?);
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

// uniqueKeys trims keys and drops blanks and duplicates, keeping order.
func uniqueKeys(keys []string) []string {
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	return uniq
}

func scanLabels(rows *sql.Rows, size int) (map[string]string, error) {
	out := make(map[string]string, size)
	for rows.Next() {
		var key, label string
		if err := rows.Scan(&key, &label); err != nil {
			return nil, fmt.Errorf("get label cache: scan rows: %w", err)
		}
		out[key] = label
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get label cache: row iteration: %w", err)
	}
	return out, nil
}
