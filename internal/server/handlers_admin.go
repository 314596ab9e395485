package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.cfg.Designs.ListUsers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleAdminDesigns(w http.ResponseWriter, r *http.Request) {
	designs, err := s.cfg.Designs.ListAllDesigns(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, designs)
}

func (s *Server) handleAdminAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.cfg.Designs.Analytics(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	removed, err := s.cfg.Designs.DeleteUser(r.Context(), ownerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deletedDesigns": removed})
}

func (s *Server) handleAdminDeleteDesign(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Designs.DeleteAnyDesign(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
