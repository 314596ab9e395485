package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plantforge/plantforge/pkg/design"
)

func (s *Server) handleListDesigns(w http.ResponseWriter, r *http.Request) {
	designs, err := s.cfg.Designs.ListDesigns(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, designs)
}

func (s *Server) handleCreateDesign(w http.ResponseWriter, r *http.Request) {
	var in design.DesignInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.cfg.Designs.CreateDesign(r.Context(), ownerFromContext(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGetDesign(w http.ResponseWriter, r *http.Request) {
	d, err := s.cfg.Designs.GetDesign(r.Context(), ownerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleUpdateDesign(w http.ResponseWriter, r *http.Request) {
	var patch design.DesignInput
	if err := decodeJSON(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.cfg.Designs.UpdateDesign(r.Context(), ownerFromContext(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDesign(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Designs.DeleteDesign(r.Context(), ownerFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDesignLayout(w http.ResponseWriter, r *http.Request) {
	sc, err := s.cfg.Designs.Layout(r.Context(), ownerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// =============================================================================
// Profile
// =============================================================================

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	u, err := s.cfg.Designs.GetUser(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch design.ProfilePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.cfg.Designs.UpdateProfile(r.Context(), ownerFromContext(r.Context()), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
