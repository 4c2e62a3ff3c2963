package handlers

import (
	"flare-label-service/internal/api/dto"
	"flare-label-service/internal/domain"
	"flare-label-service/internal/platform/obs"
	"flare-label-service/internal/ports"
	"flare-label-service/internal/services"
	"log"
	"net/http"
)

// SiteHandler exposes read-only site listings with their labels.
type SiteHandler struct {
	Repo     ports.SiteRepository
	Cache    ports.LabelCache
	Defaults domain.LabelOptions
}

func (h *SiteHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	opts, err := labelOptions(r.URL.Query(), h.Defaults)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sites, err := services.LabelSites(r.Context(), services.LabelSitesRequest{Options: opts}, h.Repo, h.Cache)
	if err != nil {
		log.Printf("req_id=%s list sites failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListSitesResponse{
		Sites: make([]dto.SiteResponse, 0, len(sites)),
	}
	for _, s := range sites {
		res.Sites = append(res.Sites, dto.SiteResponse{
			SiteID: s.SiteID,
			Name:   s.Name,
			Lat:    s.Coordinates.Lat,
			Lon:    s.Coordinates.Lon,
			Label:  s.Label,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
