package repositories

import (
	"context"
	"flare-label-service/internal/domain"
	"sort"
)

// In-memory SiteRepository for tests and offline tooling.
type MockSiteRepository struct {
	sites []*domain.Site
	Err   error
}

func NewMockSiteRepository(sites ...*domain.Site) *MockSiteRepository {
	out := append([]*domain.Site(nil), sites...)
	sort.Slice(out, func(i, j int) bool { return out[i].SiteID < out[j].SiteID })
	return &MockSiteRepository{sites: out}
}

func (r *MockSiteRepository) ListSites(ctx context.Context) ([]*domain.Site, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.sites, nil
}
