package plan

import (
	"testing"

	"github.com/CursiveCrow/cadence/pkg/errors"
)

func TestValidate_OK(t *testing.T) {
	p := &Plan{
		Tasks: []Task{
			{ID: "a", Start: 0, Duration: 2},
			{ID: "b", Start: 2, Duration: 2},
		},
		Dependencies: []Dependency{
			{ID: "d1", Src: "a", Dst: "b", Type: FinishToStart},
		},
	}

	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_DuplicateTaskID(t *testing.T) {
	p := &Plan{
		Tasks: []Task{
			{ID: "a", Duration: 1},
			{ID: "a", Duration: 1},
		},
	}

	err := p.Validate()
	if !errors.Is(err, errors.ErrCodeInvalidTask) {
		t.Errorf("Validate() = %v, want INVALID_TASK", err)
	}
}

func TestValidate_NonPositiveDuration(t *testing.T) {
	p := &Plan{Tasks: []Task{{ID: "a", Duration: 0}}}

	err := p.Validate()
	if !errors.Is(err, errors.ErrCodeInvalidTask) {
		t.Errorf("Validate() = %v, want INVALID_TASK", err)
	}
}

func TestValidate_SelfDependency(t *testing.T) {
	p := &Plan{
		Tasks:        []Task{{ID: "a", Duration: 1}},
		Dependencies: []Dependency{{ID: "d1", Src: "a", Dst: "a"}},
	}

	err := p.Validate()
	if !errors.Is(err, errors.ErrCodeSelfDependency) {
		t.Errorf("Validate() = %v, want SELF_DEPENDENCY", err)
	}
}

func TestValidate_DanglingReference(t *testing.T) {
	p := &Plan{
		Tasks:        []Task{{ID: "a", Duration: 1}},
		Dependencies: []Dependency{{ID: "d1", Src: "a", Dst: "ghost"}},
	}

	err := p.Validate()
	if !errors.Is(err, errors.ErrCodeDanglingReference) {
		t.Errorf("Validate() = %v, want DANGLING_REFERENCE", err)
	}
}

func TestValidate_UnknownDependencyType(t *testing.T) {
	p := &Plan{
		Tasks: []Task{
			{ID: "a", Duration: 1},
			{ID: "b", Duration: 1},
		},
		Dependencies: []Dependency{{ID: "d1", Src: "a", Dst: "b", Type: "sideways"}},
	}

	err := p.Validate()
	if !errors.Is(err, errors.ErrCodeInvalidDependency) {
		t.Errorf("Validate() = %v, want INVALID_DEPENDENCY", err)
	}
}

func TestNormalize_FillsDefaults(t *testing.T) {
	p := &Plan{
		Tasks: []Task{
			{ID: "a", Duration: 1},
			{ID: "b", Duration: 1},
		},
		Dependencies: []Dependency{{Src: "a", Dst: "b"}},
	}

	p.Normalize()

	if p.Dependencies[0].ID == "" {
		t.Error("Normalize() left dependency ID empty")
	}
	if p.Dependencies[0].Type != FinishToStart {
		t.Errorf("Normalize() type = %q, want %q", p.Dependencies[0].Type, FinishToStart)
	}

	// Idempotent: a second pass must not rewrite the generated ID.
	id := p.Dependencies[0].ID
	p.Normalize()
	if p.Dependencies[0].ID != id {
		t.Error("Normalize() is not idempotent")
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Task
		want bool
	}{
		{"overlapping", Task{Start: 0, Duration: 3}, Task{Start: 2, Duration: 2}, true},
		{"touching endpoints", Task{Start: 0, Duration: 2}, Task{Start: 2, Duration: 2}, false},
		{"disjoint", Task{Start: 0, Duration: 1}, Task{Start: 5, Duration: 1}, false},
		{"contained", Task{Start: 0, Duration: 10}, Task{Start: 3, Duration: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() is not symmetric")
			}
		})
	}
}

func TestHash_Deterministic(t *testing.T) {
	p := &Plan{
		Tasks:        []Task{{ID: "a", Start: 0, Duration: 2}},
		Dependencies: []Dependency{{ID: "d1", Src: "a", Dst: "a"}},
	}

	if p.Hash() != p.Hash() {
		t.Error("Hash() is not deterministic")
	}

	q := &Plan{Tasks: []Task{{ID: "a", Start: 1, Duration: 2}}}
	if p.Hash() == q.Hash() {
		t.Error("Hash() collided for different plans")
	}
}
