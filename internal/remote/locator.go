// SPDX-License-Identifier: MPL-2.0

package remote

import (
	"strings"

	"github.com/fpgawars/icm/pkg/collection"
)

// DefaultBaseURL is the organization that hosts every known collection.
const DefaultBaseURL = "https://github.com/FPGAwars"

type (
	// Templates holds the URL shape of the collection hosting service.
	// Only the base is configurable; the path layout follows GitHub's
	// archive and raw-file conventions.
	Templates struct {
		// BaseURL is the owner URL every collection repository lives under.
		BaseURL string
	}

	// Locator computes the remote and local names for a collection reference.
	Locator struct {
		base string
	}

	// Location is everything needed to fetch and store one collection build.
	Location struct {
		Reference collection.Reference
		// RemoteURL is the zip archive to download.
		RemoteURL string
		// ArchiveName is the local file name the archive is saved under.
		ArchiveName string
		// EntryName is the store folder the archive materializes as.
		EntryName string
	}
)

// DefaultTemplates returns the templates for the public FPGAwars organization.
func DefaultTemplates() Templates {
	return Templates{BaseURL: DefaultBaseURL}
}

// NewLocator builds a Locator from t. An empty BaseURL selects DefaultBaseURL.
func NewLocator(t Templates) *Locator {
	base := strings.TrimRight(t.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Locator{base: base}
}

// HomeURL returns the repository URL of a collection.
func (l *Locator) HomeURL(name collection.CollectionName) string {
	return l.base + "/" + string(name)
}

// ArchiveURL returns the download URL: the main branch archive when version
// is empty, otherwise the archive of tag v<version>.
func (l *Locator) ArchiveURL(name collection.CollectionName, version collection.Version) string {
	file := collection.ArchiveFilename(version)
	if version == "" {
		return l.HomeURL(name) + "/archive/refs/heads/" + file
	}
	return l.HomeURL(name) + "/archive/refs/tags/" + file
}

// ManifestURL returns the package.json URL on the main branch. It does not
// depend on any version: the main branch manifest announces the latest release.
func (l *Locator) ManifestURL(name collection.CollectionName) string {
	return l.HomeURL(name) + "/raw/" + collection.DevBranch + "/" + collection.ManifestFileName
}

// Resolve derives the full Location for ref.
func (l *Locator) Resolve(ref collection.Reference) Location {
	return Location{
		Reference:   ref,
		RemoteURL:   l.ArchiveURL(ref.Name, ref.Version),
		ArchiveName: collection.ArchiveFilename(ref.Version),
		EntryName:   ref.EntryName(),
	}
}
