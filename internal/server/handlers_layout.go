package server

import (
	"net/http"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/errors"
	"github.com/plantforge/plantforge/pkg/pipeline"
	"github.com/plantforge/plantforge/pkg/scene"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Designs != nil {
		if err := s.cfg.Designs.Store().Ping(r.Context()); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleLayout computes a scene from raw parameters. ?format=msgpack
// selects the binary encoding.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var raw plant.RawParams
	if err := decodeJSON(w, r, &raw); err != nil {
		s.writeError(w, r, err)
		return
	}

	sc, err := s.cfg.Runner.Layout(r.Context(), s.pipelineOptions(raw))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", pipeline.FormatJSON:
		writeJSON(w, http.StatusOK, sc)
	case pipeline.FormatMsgpack:
		data, err := scene.MarshalMsgpack(sc)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeArtifact(w, format, data)
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "layout format must be json or msgpack, got %q", format))
	}
}

// handleRender computes a scene and renders one artifact.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	var raw plant.RawParams
	if err := decodeJSON(w, r, &raw); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.pipelineOptions(raw)
	opts.Formats = []string{format}
	opts.Labels = r.URL.Query().Get("labels") == "true"
	opts.Detailed = r.URL.Query().Get("detailed") == "true"
	opts.Logger = s.loggerFrom(r.Context())

	result, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeArtifact(w, format, result.Artifacts[format])
}

func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
