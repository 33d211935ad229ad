// SPDX-License-Identifier: MPL-2.0

package collection

import (
	"strings"

	"golang.org/x/mod/semver"
)

const (
	// DevBranch is the repository branch holding the development build.
	DevBranch = "main"

	// ArchiveExt is the extension of every downloadable collection archive.
	ArchiveExt = ".zip"
)

// ArchiveFilename returns the remote archive file name: "main.zip" for the
// development build, "v<version>.zip" for a tagged release.
func ArchiveFilename(version Version) string {
	if version == "" {
		return DevBranch + ArchiveExt
	}
	return "v" + string(version) + ArchiveExt
}

// EntryName returns the store folder name: "<name>-main" for the development
// build, "<name>-<version>" for a tagged release.
func EntryName(name CollectionName, version Version) string {
	if version == "" {
		return string(name) + string(SeparatorEntry) + DevBranch
	}
	return string(name) + string(SeparatorEntry) + string(version)
}

// SplitEntryName splits a store entry name at its first separator.
// The second return value is "main" for development entries and the raw
// version for tagged ones; ok is false when entry has no separator.
func SplitEntryName(entry string) (name CollectionName, tag string, ok bool) {
	before, after, found := strings.Cut(entry, string(SeparatorEntry))
	if !found {
		return CollectionName(entry), "", false
	}
	return CollectionName(before), after, true
}

// CompareEntries orders store entry names by collection name, then by
// version. Development ("main") entries sort after every tagged version and
// non-semver tags fall back to lexical order.
func CompareEntries(a, b string) int {
	an, at, _ := SplitEntryName(a)
	bn, bt, _ := SplitEntryName(b)
	if c := strings.Compare(string(an), string(bn)); c != 0 {
		return c
	}

	switch {
	case at == bt:
		return 0
	case at == DevBranch:
		return 1
	case bt == DevBranch:
		return -1
	}

	av, bv := "v"+at, "v"+bt
	if semver.IsValid(av) && semver.IsValid(bv) {
		if c := semver.Compare(av, bv); c != 0 {
			return c
		}
	}
	return strings.Compare(at, bt)
}
