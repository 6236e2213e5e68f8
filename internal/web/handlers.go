package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CursiveCrow/cadence/pkg/errors"
	"github.com/CursiveCrow/cadence/pkg/pipeline"
	"github.com/CursiveCrow/cadence/pkg/plan"
	"github.com/CursiveCrow/cadence/pkg/render"
	"github.com/CursiveCrow/cadence/pkg/store"
)

// scheduleRequest is the body for schedule and save endpoints.
type scheduleRequest struct {
	Plan    plan.Plan        `json:"plan"`
	Options pipeline.Options `json:"options"`
	Name    string           `json:"name,omitempty"` // save endpoint only
}

// renderRequest is the body for the render endpoint.
type renderRequest struct {
	Plan     plan.Plan `json:"plan"`
	Detailed bool      `json:"detailed,omitempty"`
}

// errorBody is the JSON shape of all error responses.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleValidate checks a plan without computing a schedule. Validation
// failures are reported in the body with status 200; the request itself
// succeeded.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var p plan.Plan
	if !decodeBody(w, r, &p) {
		return
	}
	p.Normalize()

	if err := s.runner.Validate(r.Context(), &p); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"valid": false,
			"error": errorDetail{Code: errors.GetCode(err), Message: errors.UserMessage(err)},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"valid":     true,
		"plan_hash": p.Hash(),
	})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Plan.Normalize()

	result, err := s.runner.Execute(r.Context(), &req.Plan, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Plan.Normalize()

	if err := s.runner.Validate(r.Context(), &req.Plan); err != nil {
		writeError(w, err)
		return
	}

	_, analysis, _ := s.runner.ComputeSchedule(r.Context(), &req.Plan, pipeline.Options{})
	lanes, _ := s.runner.ComputeLayout(r.Context(), &req.Plan, pipeline.Options{})

	dot := render.ToDOT(&req.Plan, render.Options{
		Detailed: req.Detailed,
		Timing:   analysis,
		Lanes:    lanes,
	})
	svg, err := render.RenderSVG(r.Context(), dot)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render diagram"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) handleSaveSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Plan.Normalize()

	result, err := s.runner.Execute(r.Context(), &req.Plan, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	rec := store.NewRecord(req.Name, result.Schedule)
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	planHash := r.URL.Query().Get("plan_hash")
	if planHash == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "plan_hash query parameter is required"))
		return
	}

	recs, err := s.store.ListByPlan(r.Context(), planHash)
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}

	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody decodes a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusForCode(code), errorBody{
		Error: errorDetail{Code: code, Message: errors.UserMessage(err)},
	})
}

// statusForCode maps engine error codes to HTTP status codes. Structurally
// broken requests are 400; well-formed plans that fail the scheduling gates
// are 422.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidOptions:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidTask, errors.ErrCodeInvalidDependency,
		errors.ErrCodeInvalidPlan, errors.ErrCodeSelfDependency, errors.ErrCodeDanglingReference:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeScheduleNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
