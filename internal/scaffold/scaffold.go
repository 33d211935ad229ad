// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// BlocksDir holds the collection's blocks.
	BlocksDir = "blocks"
	// ExamplesDir holds the collection's example designs.
	ExamplesDir = "examples"
	// LocaleDir holds translations.
	LocaleDir = "locale"

	// ReadmeFile is regenerated by Update.
	ReadmeFile = "README.md"
	// LicenseFile is written by Create.
	LicenseFile = "LICENSE"
	// TranslationFile is regenerated by Update, relative to the collection root.
	TranslationFile = "locale/translation.js"

	// iceExt is the extension of Icestudio design files.
	iceExt = ".ice"
	// buildDir is Icestudio's build output folder, never documented.
	buildDir = "ice-build"
)

const (
	// KindDirectory marks a directory change.
	KindDirectory Kind = iota + 1
	// KindFile marks a file change.
	KindFile
)

const (
	// ActionCreated means the item did not exist and was written.
	ActionCreated Action = iota + 1
	// ActionExists means Create found the item and left it untouched.
	ActionExists
	// ActionUpdated means Update replaced outdated content.
	ActionUpdated
	// ActionUnchanged means the generated content matched the file.
	ActionUnchanged
	// ActionKept means the user declined to replace outdated content.
	ActionKept
)

type (
	// Kind distinguishes files from directories in a Change.
	Kind int

	// Action is what happened to one item of the collection tree.
	Action int

	// Change reports the outcome for one path, relative to the collection root.
	Change struct {
		Path   string
		Kind   Kind
		Action Action
	}

	// Scaffolder operates on the collection rooted at dir.
	Scaffolder struct {
		fs  afero.Fs
		dir string
	}
)

// New returns a Scaffolder for the collection rooted at dir on fs.
func New(fs afero.Fs, dir string) *Scaffolder {
	return &Scaffolder{fs: fs, dir: filepath.Clean(dir)}
}

// Dir returns the collection root.
func (s *Scaffolder) Dir() string { return s.dir }

func (s *Scaffolder) path(rel string) string {
	return filepath.Join(s.dir, filepath.FromSlash(rel))
}

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionExists:
		return "already exists"
	case ActionUpdated:
		return "updated"
	case ActionUnchanged:
		return "already updated"
	case ActionKept:
		return "not updated"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// String renders the change as "`blocks` directory created".
func (c Change) String() string {
	return fmt.Sprintf("`%s` %s %s", c.Path, c.Kind, c.Action)
}
