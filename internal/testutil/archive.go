// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/zip"
	"bytes"
	"maps"
	"slices"
	"strings"
	"testing"
)

// ZipArchive builds a zip archive holding files (slash-separated name to
// content). Names ending in "/" become directory entries. Entries are written
// in lexical order so archives are reproducible.
func ZipArchive(t testing.TB, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range slices.Sorted(maps.Keys(files)) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if strings.HasSuffix(name, "/") {
			continue
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

// CollectionArchive builds the archive the hosting service serves for one
// collection build: every file sits below a single top-level folder such as
// "iceK-0.1.4" or "iceK-main".
func CollectionArchive(t testing.TB, topDir string, files map[string]string) []byte {
	t.Helper()

	prefixed := map[string]string{topDir + "/": ""}
	for name, content := range files {
		prefixed[topDir+"/"+name] = content
	}
	return ZipArchive(t, prefixed)
}
