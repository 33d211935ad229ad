// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/fpgawars/icm/internal/remote"
	"github.com/fpgawars/icm/pkg/collection"
)

// Unavailable is shown in place of version and description when a manifest
// cannot be fetched.
const Unavailable = "xxx"

type (
	// ManifestFetcher retrieves a collection manifest. *remote.Client satisfies it.
	ManifestFetcher interface {
		FetchManifest(ctx context.Context, url string) (*collection.Manifest, error)
	}

	// Entry is one described catalog collection.
	Entry struct {
		Name        collection.CollectionName
		Channel     Channel
		Version     string
		Description string
		// Err is set when the manifest could not be fetched.
		Err error
	}

	// Lister describes catalog collections from their remote manifests.
	Lister struct {
		fetcher ManifestFetcher
		locator *remote.Locator
	}
)

// NewLister returns a Lister reading manifests through fetcher.
func NewLister(fetcher ManifestFetcher, locator *remote.Locator) *Lister {
	return &Lister{fetcher: fetcher, locator: locator}
}

// Describe fetches the manifest of every collection in ch, one at a time.
// Failures are recorded per entry and never stop the listing. onEntry, when
// non-nil, is called as each entry completes.
func (l *Lister) Describe(ctx context.Context, ch Channel, onEntry func(Entry)) []Entry {
	names := Names(ch)
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		e := Entry{Name: name, Channel: ch, Version: Unavailable, Description: Unavailable}

		if err := ctx.Err(); err != nil {
			e.Err = err
		} else if m, err := l.fetcher.FetchManifest(ctx, l.locator.ManifestURL(name)); err != nil {
			e.Err = err
		} else {
			e.Version = m.Version
			e.Description = m.Description
		}

		if onEntry != nil {
			onEntry(e)
		}
		entries = append(entries, e)
	}
	return entries
}

// RenderTable writes entries as a borderless Name/Version/Description table.
func RenderTable(w io.Writer, title string, entries []Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if title != "" {
		t.SetTitle(strings.ToUpper(title))
	}
	t.AppendHeader(table.Row{"Name", "Version", "Description"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Name, e.Version, e.Description})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})

	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
}
