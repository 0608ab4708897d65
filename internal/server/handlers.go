package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mhersche/isoline/pkg/contour"
	"github.com/mhersche/isoline/pkg/errors"
	"github.com/mhersche/isoline/pkg/pipeline"
	"github.com/mhersche/isoline/pkg/store"
)

// traceResponse is the body of a successful POST /v1/contours.
type traceResponse struct {
	GridHash string            `json:"grid_hash"`
	Levels   []float64         `json:"levels"`
	Contours []contour.Contour `json:"contours"`
	Cache    cacheInfo         `json:"cache"`
}

type cacheInfo struct {
	TraceHit bool `json:"trace_hit"`
}

// createSetRequest is the body of POST /v1/sets: a set name plus the
// pipeline options for the trace.
type createSetRequest struct {
	Name string `json:"name"`
	pipeline.Options
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeTraceOptions reads pipeline options from the request body and
// rejects anything that would touch the server's filesystem.
func decodeTraceOptions(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func checkInlineOnly(opts *pipeline.Options) error {
	if opts.GridPath != "" {
		return errors.New(errors.ErrCodeInvalidInput, "grid_path is not accepted over HTTP, send values inline")
	}
	return nil
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := decodeTraceOptions(r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := checkInlineOnly(&opts); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, traceResponse{
		GridHash: result.GridHash,
		Levels:   result.Levels,
		Contours: result.Contours,
		Cache:    cacheInfo{TraceHit: result.CacheInfo.TraceHit},
	})
}

func (s *Server) handleCreateSet(w http.ResponseWriter, r *http.Request) {
	var req createSetRequest
	if err := decodeTraceOptions(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Name == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "name is required"))
		return
	}
	if err := checkInlineOnly(&req.Options); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	set := store.NewSet(req.Name, result.Levels, result.Contours)
	if err := s.store.Put(r.Context(), set); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("stored contour set", "id", set.ID, "name", set.Name, "contours", len(set.Contours))
	s.writeJSON(w, http.StatusCreated, store.Summarize(set))
}

func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]store.Summary{"sets": summaries})
}

func (s *Server) handleGetSet(w http.ResponseWriter, r *http.Request) {
	set, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
