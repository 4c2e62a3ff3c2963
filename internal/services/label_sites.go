package services

import (
	"context"
	"flare-label-service/internal/domain"
	"flare-label-service/internal/platform/obs"
	"flare-label-service/internal/ports"
	"fmt"
	"log"
)

type LabelSitesRequest struct {
	Options domain.LabelOptions
}

// LabelSites returns every site with its label. Labels are served from the
// cache when present; misses are encoded and written back. A nil cache
// disables caching, and cache failures only cost a recomputation.
func LabelSites(
	ctx context.Context,
	req LabelSitesRequest,
	repo ports.SiteRepository,
	cache ports.LabelCache,
) (_ []domain.LabeledSite, err error) {
	defer obs.Time(ctx, "labels.LabelSites")(&err)

	sites, err := repo.ListSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("label sites: list sites: %w", err)
	}
	if len(sites) == 0 {
		return []domain.LabeledSite{}, nil
	}

	keys := make([]string, len(sites))
	for i, s := range sites {
		keys[i] = req.Options.CacheKey(*s)
	}

	cached := map[string]string{}
	if cache != nil {
		got, err := cache.GetMany(ctx, keys)
		if err != nil {
			log.Printf("req_id=%s label sites: cache read failed, recomputing: %v", obs.RequestID(ctx), err)
		} else {
			cached = got
		}
	}

	out := make([]domain.LabeledSite, 0, len(sites))
	fresh := make(map[string]string)
	for i, s := range sites {
		label, ok := cached[keys[i]]
		if !ok {
			label, err = domain.EncodeLabel(s.Coordinates, req.Options)
			if err != nil {
				return nil, fmt.Errorf("label sites: site_id=%d: %w", s.SiteID, err)
			}
			fresh[keys[i]] = label
		}
		out = append(out, domain.LabeledSite{Site: *s, Label: label})
	}

	if cache != nil && len(fresh) > 0 {
		if err := cache.PutMany(ctx, fresh); err != nil {
			log.Printf("req_id=%s label sites: cache write failed: %v", obs.RequestID(ctx), err)
		}
	}

	return out, nil
}
