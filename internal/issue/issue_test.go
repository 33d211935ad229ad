// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       Id
		contains string
	}{
		{InvalidReferenceId, "Invalid collection reference"},
		{ManifestUnavailableId, "latest version"},
		{DownloadFailedId, "Download failed"},
		{ArchiveCorruptId, "could not be extracted"},
		{CollectionNotFoundId, "Collection not installed"},
		{StoreNotWritableId, "collections folder"},
		{ConfigLoadFailedId, "Failed to load configuration"},
		{NotACollectionId, "Not a valid collection"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			t.Parallel()

			page := Get(tt.id)
			if page == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if page.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", page.Id(), tt.id)
			}
			if !strings.Contains(string(page.MarkdownMsg()), tt.contains) {
				t.Errorf("page %d should contain %q", tt.id, tt.contains)
			}
		})
	}

	if Get(Id(9999)) != nil {
		t.Error("Get(9999) should return nil")
	}
}

func TestValues_SortedAndComplete(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(NotACollectionId) {
		t.Fatalf("len(Values()) = %d, want %d", len(values), NotACollectionId)
	}
	for i, v := range values {
		if v.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, v.Id(), i+1)
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	t.Parallel()

	page := Get(InvalidReferenceId)
	links := page.DocLinks()
	if len(links) == 0 {
		t.Fatal("expected doc links")
	}
	links[0] = "modified"
	if page.DocLinks()[0] == "modified" {
		t.Error("DocLinks() should return a clone")
	}
}

// TestIssue_Render swaps the package-level renderer, so it does not run in parallel.
func TestIssue_Render(t *testing.T) {
	original := render
	t.Cleanup(func() { render = original })

	var gotStyle string
	render = func(in, stylePath string) (string, error) {
		gotStyle = stylePath
		return in, nil
	}

	out, err := Get(ManifestUnavailableId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if gotStyle != "notty" {
		t.Errorf("style = %q, want notty", gotStyle)
	}
	if !strings.Contains(out, "## See also") || !strings.Contains(out, "https://github.com/FPGAwars") {
		t.Errorf("rendered page should list its links:\n%s", out)
	}
}
