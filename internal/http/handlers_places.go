package http

import (
	"net/http"
	"strconv"
)

type placeDTO struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// handleSearchPlaces geocodes a free-text query into location candidates
// for the job form.
func (s *Server) handleSearchPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, r, http.StatusBadRequest, "missing q parameter")
		return
	}

	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	places, err := s.geocoder.Search(r.Context(), q, limit)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "geocoding unavailable")
		return
	}

	dtos := make([]placeDTO, 0, len(places))
	for _, p := range places {
		dtos = append(dtos, placeDTO{Label: p.Label, Latitude: p.Latitude, Longitude: p.Longitude})
	}
	writeJSON(w, http.StatusOK, dtos)
}
