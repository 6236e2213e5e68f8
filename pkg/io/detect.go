package io

import (
	"path/filepath"
	"strings"

	"github.com/CursiveCrow/cadence/pkg/errors"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// Import reads a plan file, choosing the decoder by file extension.
// ".json" uses the JSON decoder; ".toml" uses the TOML manifest decoder.
func Import(path string) (*plan.Plan, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ImportJSON(path)
	case ".toml":
		return ImportTOML(path)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported plan format %q (want .json or .toml)", filepath.Ext(path))
	}
}
