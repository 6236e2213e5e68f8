package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CursiveCrow/cadence/pkg/errors"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

const jsonPlan = `{
  "tasks": [
    {"id": "design", "start": 0, "duration": 3},
    {"id": "build", "start": 3, "duration": 5}
  ],
  "dependencies": [
    {"src": "design", "dst": "build"}
  ]
}`

const tomlPlan = `
[[tasks]]
id = "design"
start = 0
duration = 3

[[tasks]]
id = "build"
start = 3
duration = 5

[[dependencies]]
src = "design"
dst = "build"
`

func TestReadJSON(t *testing.T) {
	p, err := ReadJSON(strings.NewReader(jsonPlan))
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if len(p.Tasks) != 2 || len(p.Dependencies) != 1 {
		t.Fatalf("got %d tasks, %d dependencies", len(p.Tasks), len(p.Dependencies))
	}

	// Normalization fills in defaults.
	d := p.Dependencies[0]
	if d.ID == "" {
		t.Error("dependency ID should be assigned during import")
	}
	if d.Type != plan.FinishToStart {
		t.Errorf("dependency type = %q, want finish_to_start", d.Type)
	}

	if err := p.Validate(); err != nil {
		t.Errorf("imported plan should validate: %v", err)
	}
}

func TestReadJSON_UnknownField(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"tasks":[{"id":"a","start":0,"druation":3}]}`))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestReadTOML(t *testing.T) {
	p, err := ReadTOML(strings.NewReader(tomlPlan))
	if err != nil {
		t.Fatalf("ReadTOML error: %v", err)
	}
	if len(p.Tasks) != 2 || len(p.Dependencies) != 1 {
		t.Fatalf("got %d tasks, %d dependencies", len(p.Tasks), len(p.Dependencies))
	}
	if p.Tasks[1].Duration != 5 {
		t.Errorf("task duration = %d, want 5", p.Tasks[1].Duration)
	}
	if p.Dependencies[0].Type != plan.FinishToStart {
		t.Errorf("dependency type = %q, want finish_to_start", p.Dependencies[0].Type)
	}
}

func TestReadTOML_UnknownKey(t *testing.T) {
	_, err := ReadTOML(strings.NewReader("[[tasks]]\nid = \"a\"\nstart = 0\nlength = 3\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p, err := ReadJSON(strings.NewReader(jsonPlan))
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(p, &buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	p2, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("re-import error: %v", err)
	}
	if p.Hash() != p2.Hash() {
		t.Error("round trip changed the plan content hash")
	}
}

func TestImport_ByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "plan.json")
	if err := os.WriteFile(jsonPath, []byte(jsonPlan), 0o644); err != nil {
		t.Fatal(err)
	}
	tomlPath := filepath.Join(dir, "plan.toml")
	if err := os.WriteFile(tomlPath, []byte(tomlPlan), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Import(jsonPath); err != nil {
		t.Errorf("Import(.json) error: %v", err)
	}
	if _, err := Import(tomlPath); err != nil {
		t.Errorf("Import(.toml) error: %v", err)
	}

	_, err := Import(filepath.Join(dir, "plan.yaml"))
	if errors.GetCode(err) != errors.ErrCodeUnsupported {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeUnsupported)
	}
}

func TestImportJSON_MissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}
