// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/fpgawars/icm/pkg/collection"
)

const testDir = "/work/MyCollection"

type answer struct {
	ok      bool
	prompts []string
}

func (a *answer) Confirm(prompt string) (bool, error) {
	a.prompts = append(a.prompts, prompt)
	return a.ok, nil
}

func newTestScaffolder(t *testing.T) (*Scaffolder, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return New(fs, testDir), fs
}

func write(t *testing.T, fs afero.Fs, rel, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, testDir+"/"+rel, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
}

func read(t *testing.T, fs afero.Fs, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, testDir+"/"+rel)
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func actions(changes []Change) []Action {
	out := make([]Action, len(changes))
	for i, c := range changes {
		out[i] = c.Action
	}
	return out
}

func TestCreate(t *testing.T) {
	t.Parallel()

	s, fs := newTestScaffolder(t)

	changes, err := s.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	var paths []string
	for _, c := range changes {
		paths = append(paths, c.Path)
		if c.Action != ActionCreated {
			t.Errorf("%s: action %v, want created", c.Path, c.Action)
		}
	}
	want := []string{"blocks", "examples", "locale", "LICENSE", "package.json", "README.md"}
	if !slices.Equal(paths, want) {
		t.Errorf("created %v, want %v", paths, want)
	}
	if changes[0].String() != "`blocks` directory created" {
		t.Errorf("String() = %q", changes[0].String())
	}
	if !strings.Contains(read(t, fs, "package.json"), `"name": "MyCollection"`) {
		t.Error("package.json template not written")
	}
}

func TestCreate_KeepsExisting(t *testing.T) {
	t.Parallel()

	s, fs := newTestScaffolder(t)
	if err := fs.MkdirAll(testDir+"/blocks", 0o755); err != nil {
		t.Fatal(err)
	}
	write(t, fs, "package.json", `{"name": "Mine"}`)

	changes, err := s.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	want := []Action{ActionExists, ActionCreated, ActionCreated, ActionCreated, ActionExists, ActionCreated}
	if got := actions(changes); !slices.Equal(got, want) {
		t.Errorf("actions = %v, want %v", got, want)
	}
	if got := read(t, fs, "package.json"); got != `{"name": "Mine"}` {
		t.Errorf("existing package.json overwritten: %q", got)
	}
	if changes[4].String() != "`package.json` file already exists" {
		t.Errorf("String() = %q", changes[4].String())
	}
}

func TestValidate_CreatedCollection(t *testing.T) {
	t.Parallel()

	s, _ := newTestScaffolder(t)
	if _, err := s.Create(); err != nil {
		t.Fatal(err)
	}

	m, err := s.Validate()
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if m.Name != "MyCollection" || m.Version != "0.1.0" || m.License != "GPL-2.0" {
		t.Errorf("manifest = %+v", m)
	}
	if m.Repository == nil || m.Repository.Type != "git" {
		t.Errorf("repository = %+v", m.Repository)
	}
}

func TestValidate_Problems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setup    func(t *testing.T, fs afero.Fs)
		contains []string
	}{
		{
			name:     "empty directory",
			setup:    func(t *testing.T, fs afero.Fs) { _ = fs.MkdirAll(testDir, 0o755) },
			contains: []string{"missing package.json", "missing `blocks` or `examples` directory"},
		},
		{
			name: "bad manifest",
			setup: func(t *testing.T, fs afero.Fs) {
				_ = fs.MkdirAll(testDir+"/examples", 0o755)
				write(t, fs, "package.json", `{"name": "X", "version": "one"}`)
			},
			contains: []string{"version"},
		},
		{
			name: "missing description",
			setup: func(t *testing.T, fs afero.Fs) {
				_ = fs.MkdirAll(testDir+"/examples", 0o755)
				write(t, fs, "package.json", `{"name": "X", "version": "1.0.0"}`)
			},
			contains: []string{"description"},
		},
		{
			name: "pre-release version",
			setup: func(t *testing.T, fs afero.Fs) {
				_ = fs.MkdirAll(testDir+"/blocks", 0o755)
				write(t, fs, "package.json", `{"name": "X", "version": "0.2.0-rc1", "description": "d"}`)
			},
			contains: []string{"version"},
		},
		{
			name: "not json",
			setup: func(t *testing.T, fs afero.Fs) {
				_ = fs.MkdirAll(testDir+"/blocks", 0o755)
				write(t, fs, "package.json", `{"name": `)
			},
			contains: []string{"package.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, fs := newTestScaffolder(t)
			tt.setup(t, fs)

			_, err := s.Validate()
			if !errors.Is(err, ErrInvalidCollection) {
				t.Fatalf("Validate() error = %v, want ErrInvalidCollection", err)
			}
			var ice *InvalidCollectionError
			if !errors.As(err, &ice) || len(ice.Problems) == 0 {
				t.Fatalf("error = %#v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %q", err, want)
				}
			}
		})
	}
}

func TestValidate_ExtraManifestFields(t *testing.T) {
	t.Parallel()

	s, fs := newTestScaffolder(t)
	_ = fs.MkdirAll(testDir+"/blocks", 0o755)
	write(t, fs, "package.json", `{
  "name": "iceK",
  "version": "0.1.4",
  "description": "Constant blocks",
  "scripts": {"test": "true"},
  "authors": [{"name": "Ada", "github": "ada"}]
}`)

	m, err := s.Validate()
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if len(m.Authors) != 1 || m.Authors[0].Name != "Ada" {
		t.Errorf("authors = %+v", m.Authors)
	}
}

func TestValidate_AlternateOptionalFieldShapes(t *testing.T) {
	t.Parallel()

	s, fs := newTestScaffolder(t)
	_ = fs.MkdirAll(testDir+"/blocks", 0o755)
	write(t, fs, "package.json", `{
  "name": "iceK",
  "version": "0.1.4",
  "description": "Constant blocks",
  "keywords": ["fpga", "blocks"],
  "repository": "https://github.com/FPGAwars/iceK",
  "authors": "Obijuan"
}`)

	m, err := s.Validate()
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !slices.Equal(m.Keywords, []string{"fpga", "blocks"}) {
		t.Errorf("keywords = %q", m.Keywords)
	}
	if m.Repository == nil || m.Repository.URL != "https://github.com/FPGAwars/iceK" {
		t.Errorf("repository = %+v", m.Repository)
	}
	if len(m.Authors) != 1 || m.Authors[0].Name != "Obijuan" {
		t.Errorf("authors = %+v", m.Authors)
	}
}

// designTree lays out blocks and examples with one build folder to skip.
func designTree(t *testing.T, fs afero.Fs) {
	t.Helper()
	for _, d := range []string{"blocks/Logic/ice-build", "blocks/Logic/Gates", "examples"} {
		if err := fs.MkdirAll(testDir+"/"+d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	write(t, fs, "blocks/Logic/AND.ice", `{
  "description": "AND gate",
  "data": {"info": "Two inputs",
    "readonly": true}
}`)
	write(t, fs, "blocks/Logic/Gates/NOT.ice", `{"description": "AND gate"}`)
	write(t, fs, "blocks/Logic/ice-build/AND.ice", `{"description": "build output"}`)
	write(t, fs, "blocks/Logic/notes.txt", "ignored")
	write(t, fs, "examples/Blink.ice", `{"description": ""}`)
}

func TestIceTree(t *testing.T) {
	t.Parallel()

	s, fs := newTestScaffolder(t)
	designTree(t, fs)

	got, err := s.iceTree(BlocksDir)
	if err != nil {
		t.Fatalf("iceTree() error: %v", err)
	}
	want := "* **Logic**\n  * AND\n  * **Gates**\n    * NOT\n"
	if got != want {
		t.Errorf("iceTree() =\n%s\nwant\n%s", got, want)
	}

	missing, err := New(fs, "/elsewhere").iceTree(BlocksDir)
	if err != nil || missing != "" {
		t.Errorf("missing tree = %q, %v", missing, err)
	}
}

func TestTranslatableTexts(t *testing.T) {
	t.Parallel()

	s, fs := newTestScaffolder(t)
	designTree(t, fs)

	texts, err := s.translatableTexts(BlocksDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	texts, err = s.translatableTexts(ExamplesDir, texts)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Logic", "AND", "AND gate", "Two inputs", "Gates", "NOT", "Blink"}
	if !slices.Equal(texts, want) {
		t.Errorf("texts = %q, want %q", texts, want)
	}
}

func TestRenderTranslations(t *testing.T) {
	t.Parallel()

	got := RenderTranslations([]string{"Logic", "Don't"})
	if !strings.HasSuffix(got, "gettext('Logic');\ngettext('Don\\'t');\n") {
		t.Errorf("RenderTranslations() = %q", got)
	}
}

func TestRenderReadme(t *testing.T) {
	t.Parallel()

	m := &collection.Manifest{
		Name:        "iceK",
		Version:     "0.1.4-rc1",
		Description: "Constant blocks",
		License:     "GPL-2.0",
		Logo:        "doc/logo.svg",
		Wiki:        "https://example.com/wiki",
		Authors: []collection.Person{
			{Name: "Ada", URL: "https://ada.example"},
			{},
		},
		Contributors: []collection.Person{{Name: "Bob"}},
		Repository:   &collection.Repository{URL: "https://github.com/FPGAwars/iceK/"},
	}

	got := RenderReadme(m, "* **Logic**\n", "")

	for _, want := range []string{
		"# iceK\n",
		"![](doc/logo.svg)",
		"version-v0.1.4--rc1-orange.svg",
		"Constant blocks\n",
		"[WIKI page](https://example.com/wiki)",
		"[stable](https://github.com/FPGAwars/iceK/archive/refs/tags/v0.1.4-rc1.zip)",
		"[development](https://github.com/FPGAwars/iceK/archive/refs/heads/main.zip)",
		"## Blocks\n* **Logic**\n",
		"## Authors\n* [Ada](https://ada.example)\n\n",
		"## Contributors\n* Bob\n",
		"Licensed under [GPL-2.0]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("README lacks %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "## Examples") {
		t.Error("empty examples section should be omitted")
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	s, fs := newTestScaffolder(t)
	if _, err := s.Create(); err != nil {
		t.Fatal(err)
	}
	designTree(t, fs)

	confirm := &answer{ok: true}
	changes, err := s.Update(UpdateOptions{Confirm: confirm})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if got, want := actions(changes), []Action{ActionUpdated, ActionCreated}; !slices.Equal(got, want) {
		t.Errorf("actions = %v, want %v", got, want)
	}
	if len(confirm.prompts) != 1 || !strings.Contains(confirm.prompts[0], "README.md") {
		t.Errorf("prompts = %q", confirm.prompts)
	}
	if !strings.Contains(read(t, fs, "README.md"), "# MyCollection") {
		t.Error("README.md not regenerated")
	}
	if !strings.Contains(read(t, fs, TranslationFile), "gettext('Two inputs');") {
		t.Error("translation.js not generated")
	}

	again, err := s.Update(UpdateOptions{})
	if err != nil {
		t.Fatalf("second Update() error: %v", err)
	}
	if got, want := actions(again), []Action{ActionUnchanged, ActionUnchanged}; !slices.Equal(got, want) {
		t.Errorf("second actions = %v, want %v", got, want)
	}
	if again[0].String() != "`README.md` file already updated" {
		t.Errorf("String() = %q", again[0].String())
	}
}

func TestUpdate_Declined(t *testing.T) {
	t.Parallel()

	s, fs := newTestScaffolder(t)
	if _, err := s.Create(); err != nil {
		t.Fatal(err)
	}
	before := read(t, fs, "README.md")

	changes, err := s.Update(UpdateOptions{Confirm: &answer{ok: false}})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if changes[0].Action != ActionKept {
		t.Errorf("README action = %v, want not updated", changes[0].Action)
	}
	if read(t, fs, "README.md") != before {
		t.Error("declined README was modified")
	}
}

func TestUpdate_Yes(t *testing.T) {
	t.Parallel()

	s, _ := newTestScaffolder(t)
	if _, err := s.Create(); err != nil {
		t.Fatal(err)
	}
	changes, err := s.Update(UpdateOptions{Yes: true})
	if err != nil || changes[0].Action != ActionUpdated {
		t.Errorf("Update(Yes) = %v, %v", changes, err)
	}
}

func TestUpdate_RequiresConfirmer(t *testing.T) {
	t.Parallel()

	s, _ := newTestScaffolder(t)
	if _, err := s.Create(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Update(UpdateOptions{}); !errors.Is(err, ErrConfirmationRequired) {
		t.Errorf("Update() error = %v, want ErrConfirmationRequired", err)
	}
}

func TestUpdate_InvalidCollection(t *testing.T) {
	t.Parallel()

	s, fs := newTestScaffolder(t)
	_ = fs.MkdirAll(testDir, 0o755)
	if _, err := s.Update(UpdateOptions{Yes: true}); !errors.Is(err, ErrInvalidCollection) {
		t.Errorf("Update() error = %v, want ErrInvalidCollection", err)
	}
}
