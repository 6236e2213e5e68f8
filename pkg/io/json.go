package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/CursiveCrow/cadence/pkg/errors"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// ReadJSON decodes a JSON plan snapshot from r and normalizes it.
//
// Decoding is strict: unknown fields are rejected so that typos in
// hand-edited files ("druation") surface as errors instead of silently
// producing zero values. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*plan.Plan, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var p plan.Plan
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode plan JSON")
	}
	p.Normalize()
	return &p, nil
}

// ImportJSON reads a JSON plan file at path.
func ImportJSON(path string) (*plan.Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes a plan snapshot as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(p *plan.Plan, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode plan JSON")
	}
	return nil
}

// ExportJSON writes a plan snapshot to a JSON file at path.
func ExportJSON(p *plan.Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(p, f)
}
