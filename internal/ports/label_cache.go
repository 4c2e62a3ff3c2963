package ports

import "context"

// Contract for caching rendered labels keyed by domain.LabelOptions.CacheKey.
type LabelCache interface {
	// Return the cached labels for the keys that are present.
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
	// Store key -> label mappings, replacing existing entries.
	PutMany(ctx context.Context, labels map[string]string) error
}
