// SPDX-License-Identifier: MPL-2.0

// Package archive extracts downloaded collection archives.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/fpgawars/icm/internal/progress"
)

// maxEntryBytes is the upper bound on a single extracted file (256 MB).
const maxEntryBytes = 256 << 20

var (
	// ErrCorruptArchive is returned when the archive cannot be read as a zip file.
	ErrCorruptArchive = errors.New("corrupt archive")

	// ErrUnsafePath is the sentinel error wrapped by UnsafePathError.
	ErrUnsafePath = errors.New("archive entry escapes destination")
)

// UnsafePathError is returned for entries that are absolute or climb out of
// the destination directory.
type UnsafePathError struct {
	Entry string
}

// Error implements the error interface.
func (e *UnsafePathError) Error() string {
	return fmt.Sprintf("archive entry %q escapes the destination directory", e.Entry)
}

// Unwrap returns ErrUnsafePath so callers can use errors.Is for programmatic detection.
func (e *UnsafePathError) Unwrap() error { return ErrUnsafePath }

// Extract unpacks the zip archive at archivePath into destDir, keeping the
// relative path of every entry. Progress is reported once per entry as
// (entries done, total entries). It returns the number of entries extracted.
//
// Extraction stops at the first failure; entries already written stay on disk.
func Extract(fs afero.Fs, archivePath, destDir string, sink progress.Func) (_ int, err error) {
	f, err := fs.Open(archivePath)
	if err != nil {
		return 0, fmt.Errorf("opening archive: %w", err)
	}
	defer func() {
		// Read-only file handle; close errors are exotic.
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("reading archive size: %w", err)
	}

	// ErrInsecurePath comes with a usable reader; entryTarget rejects those entries below.
	zr, err := zip.NewReader(f, info.Size())
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return 0, fmt.Errorf("%w: %s: %w", ErrCorruptArchive, archivePath, err)
	}

	if err := fs.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", destDir, err)
	}

	total := int64(len(zr.File))
	sink.Report(0, total)
	for i, entry := range zr.File {
		target, pathErr := entryTarget(destDir, entry.Name)
		if pathErr != nil {
			return i, pathErr
		}

		if entry.FileInfo().IsDir() {
			if err := fs.MkdirAll(target, 0o755); err != nil {
				return i, fmt.Errorf("creating %s: %w", target, err)
			}
		} else if err := extractFile(fs, entry, target); err != nil {
			return i, err
		}

		sink.Report(int64(i+1), total)
	}

	return len(zr.File), nil
}

// entryTarget maps an entry name onto destDir, rejecting names that would
// land outside of it.
func entryTarget(destDir, name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", &UnsafePathError{Entry: name}
	}

	base := filepath.Clean(destDir)
	target := filepath.Join(base, filepath.FromSlash(name))
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &UnsafePathError{Entry: name}
	}
	return target, nil
}

// extractFile writes one regular entry, capping its size to guard against
// decompression bombs.
func extractFile(fs afero.Fs, entry *zip.File, target string) (err error) {
	if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("%w: opening entry %s: %w", ErrCorruptArchive, entry.Name, err)
	}
	defer func() { _ = rc.Close() }()

	perm := entry.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}

	out, err := fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	n, err := io.Copy(out, io.LimitReader(rc, maxEntryBytes+1))
	if err != nil {
		return fmt.Errorf("%w: extracting %s: %w", ErrCorruptArchive, entry.Name, err)
	}
	if n > maxEntryBytes {
		return fmt.Errorf("extracting %s: entry exceeds %d bytes", entry.Name, int64(maxEntryBytes))
	}
	return nil
}
