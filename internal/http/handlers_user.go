package http

import (
	"net/http"

	"watwallet/internal/core"
	"watwallet/internal/session"
)

type profileDTO struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type userDTO struct {
	ID      string     `json:"id"`
	Profile profileDTO `json:"profile"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	user, err := s.users.Get(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if user == nil {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, userDTO{
		ID: user.ID,
		Profile: profileDTO{
			Name:    user.Profile.Name,
			Surname: user.Profile.Surname,
			Phone:   user.Profile.Phone,
			Email:   user.Profile.Email,
		},
	})
}

// handleUpdateProfile registers the user on first write and replaces the
// profile on subsequent ones.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	var req profileDTO
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	profile := core.Profile{
		Name:    req.Name,
		Surname: req.Surname,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	existing, err := s.users.Get(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if existing == nil {
		err = s.users.Register(r.Context(), uid, profile)
	} else {
		err = s.users.UpdateProfile(r.Context(), uid, profile)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Logout(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
