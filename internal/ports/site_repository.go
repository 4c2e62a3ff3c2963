package ports

import (
	"context"
	"flare-label-service/internal/domain"
)

// Port: a boundary for retrieving Site entities from a data source.
type SiteRepository interface {
	// Retrieve all sites ordered by site id.
	ListSites(ctx context.Context) ([]*domain.Site, error)
}
