package handlers

import (
	"flare-label-service/internal/api/dto"
	"flare-label-service/internal/domain"
	"flare-label-service/internal/services"
	"log"
	"net/http"
	"strings"
)

// CodecHandler exposes the number codec and coordinate labels over HTTP.
type CodecHandler struct {
	Defaults domain.LabelOptions
}

// Encode handles GET /encode?number=&decimals=&width=&mode=&collapse=.
func (h *CodecHandler) Encode(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	q := r.URL.Query()
	number, err := floatParam(q, "number")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	decimals, err := intParam(q, "decimals", 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	width, err := intParam(q, "width", 1)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	collapse, err := boolParam(q, "collapse")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := services.EncodeNumber(services.EncodeNumberRequest{
		Number:   number,
		Decimals: decimals,
		MinWidth: width,
		Mode:     q.Get("mode"),
		Collapse: collapse,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.EncodeResponse{Token: token})
}

// Decode handles GET /decode?token=.
func (h *CodecHandler) Decode(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		writeError(w, r, http.StatusBadRequest, "token is required")
		return
	}

	v, err := services.DecodeNumber(token)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DecodeResponse{Token: token, Number: v})
}

// Label handles GET /labels?lat=&lon=&decimals= and GET /labels?label=.
func (h *CodecHandler) Label(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	q := r.URL.Query()
	if label := strings.TrimSpace(q.Get("label")); label != "" {
		c, err := domain.DecodeLabel(label)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, dto.LabelResponse{Label: label, Lat: c.Lat, Lon: c.Lon})
		return
	}

	lat, err := floatParam(q, "lat")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lon, err := floatParam(q, "lon")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	opts, err := labelOptions(q, h.Defaults)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c := domain.Coordinates{Lon: lon, Lat: lat}
	label, err := domain.EncodeLabel(c, opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LabelResponse{Label: label, Lat: lat, Lon: lon})
}

func (h *CodecHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if isClientError(err) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("codec request failed: path=%s err=%v", r.URL.Path, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}
