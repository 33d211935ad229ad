// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"embed"
	"fmt"

	"github.com/spf13/afero"
)

//go:embed templates
var templates embed.FS

// Create lays out a new collection: the blocks, examples and locale
// directories plus LICENSE, package.json and README.md. Existing items are
// reported with ActionExists and left untouched.
func (s *Scaffolder) Create() ([]Change, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", s.dir, err)
	}

	var changes []Change
	for _, dir := range []string{BlocksDir, ExamplesDir, LocaleDir} {
		c, err := s.createDir(dir)
		if err != nil {
			return changes, err
		}
		changes = append(changes, c)
	}

	files := []struct{ name, template string }{
		{LicenseFile, "templates/LICENSE"},
		{"package.json", "templates/package.json"},
		{ReadmeFile, "templates/README.md"},
	}
	for _, f := range files {
		content, err := templates.ReadFile(f.template)
		if err != nil {
			return changes, fmt.Errorf("internal error: template %s: %w", f.template, err)
		}
		c, err := s.createFile(f.name, content)
		if err != nil {
			return changes, err
		}
		changes = append(changes, c)
	}
	return changes, nil
}

func (s *Scaffolder) createDir(name string) (Change, error) {
	c := Change{Path: name, Kind: KindDirectory, Action: ActionExists}
	if exists, err := s.exists(name); err != nil || exists {
		return c, err
	}
	if err := s.fs.MkdirAll(s.path(name), 0o755); err != nil {
		return c, fmt.Errorf("creating %s: %w", s.path(name), err)
	}
	c.Action = ActionCreated
	return c, nil
}

func (s *Scaffolder) createFile(name string, content []byte) (Change, error) {
	c := Change{Path: name, Kind: KindFile, Action: ActionExists}
	if exists, err := s.exists(name); err != nil || exists {
		return c, err
	}
	if err := s.writeFile(name, content); err != nil {
		return c, err
	}
	c.Action = ActionCreated
	return c, nil
}

func (s *Scaffolder) exists(rel string) (bool, error) {
	ok, err := afero.Exists(s.fs, s.path(rel))
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", s.path(rel), err)
	}
	return ok, nil
}

func (s *Scaffolder) writeFile(rel string, content []byte) error {
	if err := afero.WriteFile(s.fs, s.path(rel), content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path(rel), err)
	}
	return nil
}
