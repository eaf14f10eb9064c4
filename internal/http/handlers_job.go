package http

import (
	"net/http"

	"watwallet/internal/core"
	"watwallet/internal/services"
	"watwallet/internal/session"
)

type locationDTO struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type jobRequest struct {
	EmployerID  string      `json:"employer_id"`
	Position    string      `json:"position"`
	Description string      `json:"description"`
	Location    locationDTO `json:"location"`
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
}

type jobDTO struct {
	ID          string      `json:"id"`
	Employer    employerDTO `json:"employer"`
	Position    string      `json:"position"`
	Description string      `json:"description"`
	Location    locationDTO `json:"location"`
	Season      int64       `json:"season"`
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
}

func (req jobRequest) dates() (start, end core.Date, err error) {
	start, err = parseDate(req.StartDate)
	if err != nil {
		return
	}
	end, err = parseDate(req.EndDate)
	return
}

func toJobDTO(v *core.JobView) jobDTO {
	return jobDTO{
		ID:          v.ID,
		Employer:    employerDTO{ID: v.Employer.ID, Name: v.Employer.Name},
		Position:    v.Position,
		Description: v.Description,
		Location: locationDTO{
			Label:     v.Location.Label,
			Latitude:  v.Location.Latitude,
			Longitude: v.Location.Longitude,
		},
		Season:    v.Season,
		StartDate: formatDate(v.StartDate),
		EndDate:   formatDate(v.EndDate),
	}
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	views, err := s.jobs.ListJobs(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	dtos := make([]jobDTO, 0, len(views))
	for i := range views {
		dtos = append(dtos, toJobDTO(&views[i]))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	var req jobRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	start, end, err := req.dates()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, err := s.jobs.AddJob(r.Context(), uid, services.JobCreate{
		EmployerID:  req.EmployerID,
		Position:    req.Position,
		Description: req.Description,
		Location: core.Location{
			Label:     req.Location.Label,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	view, err := s.jobs.GetJob(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if view == nil {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, toJobDTO(view))
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	var req jobRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	start, end, err := req.dates()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	err = s.jobs.UpdateJob(r.Context(), uid, r.PathValue("id"), services.JobUpdate{
		EmployerID:  req.EmployerID,
		Position:    req.Position,
		Description: req.Description,
		Location: core.Location{
			Label:     req.Location.Label,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// handleDeleteJob soft-deletes the association; the job record itself is
// left in place.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	if err := s.jobs.SoftDeleteJob(r.Context(), uid, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
