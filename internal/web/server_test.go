package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/CursiveCrow/cadence/pkg/pipeline"
	"github.com/CursiveCrow/cadence/pkg/store"
)

func testServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	st := store.NewMemoryStore()
	return NewServer(runner, st, logger), st
}

const validPlanJSON = `{
  "tasks": [
    {"id": "A", "start": 0, "duration": 3},
    {"id": "B", "start": 3, "duration": 2}
  ],
  "dependencies": [{"src": "A", "dst": "B"}]
}`

const cyclePlanJSON = `{
  "tasks": [
    {"id": "a", "start": 0, "duration": 1},
    {"id": "b", "start": 0, "duration": 1}
  ],
  "dependencies": [
    {"src": "a", "dst": "b"},
    {"src": "b", "dst": "a"}
  ]
}`

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestValidate_OK(t *testing.T) {
	s, _ := testServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/validate", validPlanJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Valid    bool   `json:"valid"`
		PlanHash string `json:"plan_hash"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Valid || resp.PlanHash == "" {
		t.Errorf("response = %+v", resp)
	}
}

func TestValidate_Cycle(t *testing.T) {
	s, _ := testServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/validate", cyclePlanJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Valid bool `json:"valid"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Valid {
		t.Error("cyclic plan should be invalid")
	}
	if resp.Error.Code != "INVALID_GRAPH" {
		t.Errorf("error code = %q, want INVALID_GRAPH", resp.Error.Code)
	}
}

func TestSchedule(t *testing.T) {
	s, _ := testServer(t)
	body := `{"plan": ` + validPlanJSON + `, "options": {"max_parallel": 2, "row_count": 5}}`
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/schedule", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var result pipeline.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Order) != 2 {
		t.Errorf("order = %v", result.Order)
	}
	if result.Timing == nil || result.Timing.ProjectDuration != 5 {
		t.Errorf("timing = %+v", result.Timing)
	}
	if result.Lanes == nil || result.Rows == nil || result.Leveled == nil {
		t.Error("schedule should include lanes, rows, and leveled starts")
	}
}

func TestSchedule_CycleRejected(t *testing.T) {
	s, _ := testServer(t)
	body := `{"plan": ` + cyclePlanJSON + `}`
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/schedule", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body)
	}

	var resp errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "INVALID_GRAPH" {
		t.Errorf("error code = %q", resp.Error.Code)
	}
}

func TestSchedule_MalformedBody(t *testing.T) {
	s, _ := testServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/schedule", `{"plan": [`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSchedule_InvalidOptions(t *testing.T) {
	s, _ := testServer(t)
	body := `{"plan": ` + validPlanJSON + `, "options": {"row_count": 100}}`
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/schedule", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body)
	}
}

func TestSchedules_CRUD(t *testing.T) {
	s, _ := testServer(t)
	h := s.Handler()

	// Save
	body := `{"name": "sprint 12", "plan": ` + validPlanJSON + `, "options": {}}`
	rec := doJSON(t, h, http.MethodPost, "/v1/schedules/", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body)
	}

	var saved store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" || saved.Name != "sprint 12" {
		t.Fatalf("saved = %+v", saved)
	}

	// Get
	rec = doJSON(t, h, http.MethodGet, "/v1/schedules/"+saved.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// List by plan hash
	rec = doJSON(t, h, http.MethodGet, "/v1/schedules/?plan_hash="+saved.Schedule.PlanHash, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d: %s", rec.Code, rec.Body)
	}
	var recs []store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("list returned %d records, want 1", len(recs))
	}

	// List without plan_hash
	rec = doJSON(t, h, http.MethodGet, "/v1/schedules/", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("list without plan_hash status = %d, want 400", rec.Code)
	}

	// Delete
	rec = doJSON(t, h, http.MethodDelete, "/v1/schedules/"+saved.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	// Get after delete
	rec = doJSON(t, h, http.MethodGet, "/v1/schedules/"+saved.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestRender_InvalidPlanRejected(t *testing.T) {
	s, _ := testServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/render", `{"plan": `+cyclePlanJSON+`}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body)
	}
}

func TestRequestBodyTooSloppy(t *testing.T) {
	s, _ := testServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/validate", `{"tasks": [], "tusks": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field should be rejected, status = %d", rec.Code)
	}
}
