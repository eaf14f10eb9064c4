package http

import (
	"net/http"
	"strconv"
)

type employerDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type employerCreateRequest struct {
	Name string `json:"name"`
}

// handleListEmployers lists or searches employers. With a q parameter it
// filters by case-insensitive substring; limit caps the result count.
func (s *Server) handleListEmployers(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		results, err := s.employers.Search(r.Context(), q)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		dtos := make([]employerDTO, 0, len(results))
		for _, e := range results {
			dtos = append(dtos, employerDTO{ID: e.ID, Name: e.Name})
		}
		writeJSON(w, http.StatusOK, dtos)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	results, err := s.employers.List(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	dtos := make([]employerDTO, 0, len(results))
	for _, e := range results {
		dtos = append(dtos, employerDTO{ID: e.ID, Name: e.Name})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleCreateEmployer(w http.ResponseWriter, r *http.Request) {
	var req employerCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.employers.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}
