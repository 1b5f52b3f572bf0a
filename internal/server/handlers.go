package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cabinext/cabinext/pkg/buildinfo"
	"github.com/cabinext/cabinext/pkg/catalog"
	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/pipeline"
	"github.com/cabinext/cabinext/pkg/render/sink"
	"github.com/cabinext/cabinext/pkg/room"
	"github.com/cabinext/cabinext/pkg/units"
)

// RoomResponse is returned by POST /api/room.
type RoomResponse struct {
	ID          string       `json:"id"`
	LayoutHash  string       `json:"layout_hash"`
	Layout      *room.Layout `json:"layout"`
	ModuleCount int          `json:"module_count"`
	Cached      bool         `json:"cached"`
}

// WallRequest is the body of POST /api/wall.
type WallRequest struct {
	Wall   layout.Wall     `json:"wall"`
	Bases  []layout.Module `json:"bases"`
	Uppers []layout.Module `json:"uppers"`
}

// MeasureRequest is the body of POST /api/measure.
type MeasureRequest struct {
	Rect        layout.Rect           `json:"rect"`
	Orientation layout.Orientation    `json:"orientation"`
	Class       layout.ReferenceClass `json:"class"`
	Scale       units.Scale           `json:"scale"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRoom(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if !s.decode(w, r, &opts) {
		return
	}
	opts.Formats = []string{sink.FormatJSON}
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RoomResponse{
		ID:          res.ID,
		LayoutHash:  res.LayoutHash,
		Layout:      res.Layout,
		ModuleCount: res.Stats.ModuleCount,
		Cached:      res.CacheInfo.LayoutHit,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = sink.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	var opts pipeline.Options
	if !s.decode(w, r, &opts) {
		return
	}
	opts.Formats = []string{format}
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", sink.ContentType(format))
	w.Header().Set("X-Layout-Hash", res.LayoutHash)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

func (s *Server) handleWall(w http.ResponseWriter, r *http.Request) {
	var req WallRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Wall.Scale == 0 {
		req.Wall.Scale = units.DefaultScale
	}
	wl, err := layout.PlaceWall(s.engine, req.Wall, req.Bases, req.Uppers)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wl)
}

func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	var req MeasureRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Scale == 0 {
		req.Scale = units.DefaultScale
	}
	a, err := layout.Measure(s.engine, req.Scale, req.Rect, req.Orientation, req.Class)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	if s.placer == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no catalog configured"))
		return
	}
	var req catalog.PlaceRequest
	if !s.decode(w, r, &req) {
		return
	}
	placed, err := s.placer.PlaceCabinet(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, placed)
}

// decode reads a JSON body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(err error) int {
	code := errors.GetCode(err)
	switch {
	case errors.IsConfig(err),
		code == errors.ErrCodeInvalidInput,
		code == errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.IsUpstream(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := strings.TrimPrefix(err.Error(), string(code)+": ")
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		msg = "internal error"
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
