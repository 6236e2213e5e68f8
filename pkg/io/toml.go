package io

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/CursiveCrow/cadence/pkg/errors"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// ReadTOML decodes a TOML plan manifest from r and normalizes it.
//
// Unknown keys are rejected for the same reason as in [ReadJSON]: manifests
// are hand-written, and a misspelled key should fail loudly.
func ReadTOML(r io.Reader) (*plan.Plan, error) {
	var p plan.Plan
	meta, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode plan manifest")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q in plan manifest", undecoded[0].String())
	}
	p.Normalize()
	return &p, nil
}

// ImportTOML reads a TOML plan manifest file at path.
func ImportTOML(path string) (*plan.Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadTOML(f)
}
