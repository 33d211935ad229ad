// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"

	"github.com/fpgawars/icm/pkg/collection"
	"github.com/fpgawars/icm/pkg/cueutil"
)

//go:embed manifest_schema.cue
var manifestSchema []byte

// ErrInvalidCollection is the sentinel error wrapped by InvalidCollectionError.
var ErrInvalidCollection = errors.New("invalid collection")

// InvalidCollectionError lists every problem found by Validate.
type InvalidCollectionError struct {
	Dir      string
	Problems []string
}

// Error implements the error interface.
func (e *InvalidCollectionError) Error() string {
	return fmt.Sprintf("%s is not a valid collection:\n  %s", e.Dir, strings.Join(e.Problems, "\n  "))
}

// Unwrap returns ErrInvalidCollection so callers can use errors.Is for programmatic detection.
func (e *InvalidCollectionError) Unwrap() error { return ErrInvalidCollection }

// Validate checks that the collection has a package.json satisfying the
// manifest schema and at least one of the blocks or examples directories.
// All problems are collected before reporting.
func (s *Scaffolder) Validate() (*collection.Manifest, error) {
	var problems []string

	m, err := s.readManifest()
	if err != nil {
		var verr *cueutil.ValidationError
		switch {
		case errors.As(err, &verr):
			for _, p := range verr.Problems {
				problems = append(problems, collection.ManifestFileName+": "+p)
			}
		case errors.Is(err, fs.ErrNotExist):
			problems = append(problems, "missing "+collection.ManifestFileName)
		default:
			return nil, err
		}
	}

	hasBlocks, err := afero.DirExists(s.fs, s.path(BlocksDir))
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", s.path(BlocksDir), err)
	}
	hasExamples, err := afero.DirExists(s.fs, s.path(ExamplesDir))
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", s.path(ExamplesDir), err)
	}
	if !hasBlocks && !hasExamples {
		problems = append(problems, "missing `"+BlocksDir+"` or `"+ExamplesDir+"` directory")
	}

	if len(problems) > 0 {
		return nil, &InvalidCollectionError{Dir: s.dir, Problems: problems}
	}
	return m, nil
}

func (s *Scaffolder) readManifest() (*collection.Manifest, error) {
	path := s.path(collection.ManifestFileName)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := cueutil.ParseAndDecode[collection.Manifest](manifestSchema, data, "#Manifest",
		cueutil.WithFilename(collection.ManifestFileName),
	)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}
