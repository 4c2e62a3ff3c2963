package handlers

import (
	"encoding/json"
	"errors"
	"flare-label-service/internal/domain"
	"flare-label-service/internal/numflare"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// requireGet answers 405 and returns false for anything but GET.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// isClientError reports whether err was caused by request input.
func isClientError(err error) bool {
	return errors.Is(err, numflare.ErrInvalidValue) ||
		errors.Is(err, numflare.ErrParse) ||
		errors.Is(err, domain.ErrInvalidCoordinates) ||
		errors.Is(err, domain.ErrInvalidLabel)
}

func intParam(q url.Values, key string, fallback int) (int, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func floatParam(q url.Values, key string) (float64, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return f, nil
}

func boolParam(q url.Values, key string) (bool, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return b, nil
}

// labelOptions overrides defaults with the decimals query parameter.
func labelOptions(q url.Values, defaults domain.LabelOptions) (domain.LabelOptions, error) {
	opts := defaults
	d, err := intParam(q, "decimals", defaults.Decimals)
	if err != nil {
		return opts, err
	}
	opts.Decimals = d
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
