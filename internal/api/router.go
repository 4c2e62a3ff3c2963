package api

import (
	"flare-label-service/internal/api/handlers"
	"flare-label-service/internal/domain"
	"flare-label-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// cache may be nil.
func NewRouter(repo ports.SiteRepository, cache ports.LabelCache, defaults domain.LabelOptions) http.Handler {
	mux := http.NewServeMux()

	codecHandler := &handlers.CodecHandler{Defaults: defaults}
	siteHandler := &handlers.SiteHandler{
		Repo:     repo,
		Cache:    cache,
		Defaults: defaults,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/encode", codecHandler.Encode)
	mux.HandleFunc("/decode", codecHandler.Decode)
	mux.HandleFunc("/labels", codecHandler.Label)
	mux.HandleFunc("/sites", siteHandler.List)

	return requestIDMiddleware(loggingMiddleware(mux))
}
