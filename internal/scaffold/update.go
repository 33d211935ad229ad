// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrConfirmationRequired is returned when an outdated file would be
// replaced but neither a Confirmer nor Yes was supplied.
var ErrConfirmationRequired = errors.New("confirmation required")

type (
	// Confirmer asks the user a yes/no question.
	Confirmer interface {
		Confirm(prompt string) (bool, error)
	}

	// UpdateOptions controls how outdated files are replaced.
	UpdateOptions struct {
		// Yes replaces outdated files without asking.
		Yes bool
		// Confirm is consulted before replacing a file whose content differs.
		Confirm Confirmer
	}
)

// Update validates the collection and regenerates README.md and
// locale/translation.js. Missing files are created, identical ones are
// reported as ActionUnchanged, and differing ones are replaced only once
// confirmed.
func (s *Scaffolder) Update(opts UpdateOptions) ([]Change, error) {
	m, err := s.Validate()
	if err != nil {
		return nil, err
	}

	blocks, err := s.iceTree(BlocksDir)
	if err != nil {
		return nil, err
	}
	examples, err := s.iceTree(ExamplesDir)
	if err != nil {
		return nil, err
	}

	texts, err := s.translatableTexts(BlocksDir, nil)
	if err != nil {
		return nil, err
	}
	texts, err = s.translatableTexts(ExamplesDir, texts)
	if err != nil {
		return nil, err
	}

	var changes []Change
	for _, f := range []struct{ name, content string }{
		{ReadmeFile, RenderReadme(m, blocks, examples)},
		{TranslationFile, RenderTranslations(texts)},
	} {
		c, err := s.updateFile(f.name, []byte(f.content), opts)
		if err != nil {
			return changes, err
		}
		changes = append(changes, c)
	}
	return changes, nil
}

func (s *Scaffolder) updateFile(rel string, content []byte, opts UpdateOptions) (Change, error) {
	c := Change{Path: rel, Kind: KindFile}

	current, err := afero.ReadFile(s.fs, s.path(rel))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		dir := filepath.Dir(s.path(rel))
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return c, fmt.Errorf("creating %s: %w", dir, err)
		}
		c.Action = ActionCreated
		return c, s.writeFile(rel, content)
	case err != nil:
		return c, fmt.Errorf("reading %s: %w", s.path(rel), err)
	case bytes.Equal(current, content):
		c.Action = ActionUnchanged
		return c, nil
	}

	if !opts.Yes {
		if opts.Confirm == nil {
			return c, fmt.Errorf("%w: %s has changes", ErrConfirmationRequired, rel)
		}
		ok, err := opts.Confirm.Confirm(fmt.Sprintf("The `%s` file has changes. Do you want to replace it?", rel))
		if err != nil {
			return c, fmt.Errorf("confirming update of %s: %w", rel, err)
		}
		if !ok {
			c.Action = ActionKept
			return c, nil
		}
	}

	c.Action = ActionUpdated
	return c, s.writeFile(rel, content)
}

// RenderTranslations builds locale/translation.js: one gettext call per
// string so translation tooling can extract them.
func RenderTranslations(texts []string) string {
	var sb strings.Builder
	sb.WriteString("// Strings of this collection, extracted for translation.\n")
	sb.WriteString("// Generated by `icm update`; edits are overwritten.\n\n")
	for _, t := range texts {
		fmt.Fprintf(&sb, "gettext('%s');\n", strings.ReplaceAll(t, "'", `\'`))
	}
	return sb.String()
}
