// SPDX-License-Identifier: MPL-2.0

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/fpgawars/icm/pkg/collection"
)

var (
	// ErrInvalidEntryName is returned for entry names that are not a single path element.
	ErrInvalidEntryName = errors.New("invalid store entry name")

	// ErrStoreIO is wrapped by every failure to write to the store directory.
	ErrStoreIO = errors.New("collection store not writable")
)

// Store is the local collection directory. Every immediate subdirectory is
// one installed collection build; its presence is the only record that the
// build is installed.
type Store struct {
	fs   afero.Fs
	base string
}

// New returns a Store rooted at base on fs.
func New(fsys afero.Fs, base string) *Store {
	return &Store{fs: fsys, base: filepath.Clean(base)}
}

// DefaultBase returns <home>/.icestudio/collections.
func DefaultBase() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".icestudio", "collections"), nil
}

// Fs returns the filesystem the store lives on.
func (s *Store) Fs() afero.Fs { return s.fs }

// Base returns the store directory.
func (s *Store) Base() string { return s.base }

// Ensure creates the store directory if needed.
func (s *Store) Ensure() error {
	if err := s.fs.MkdirAll(s.base, 0o755); err != nil {
		return fmt.Errorf("%w: creating collection store %s: %w", ErrStoreIO, s.base, err)
	}
	return nil
}

// Path returns the absolute path of an entry. The entry is not validated.
func (s *Store) Path(entry string) string {
	return filepath.Join(s.base, entry)
}

// ArchivePath returns where a downloaded archive is kept until extracted.
func (s *Store) ArchivePath(filename string) string {
	return filepath.Join(s.base, filename)
}

// Exists reports whether entry is installed.
func (s *Store) Exists(entry string) bool {
	if validEntryName(entry) != nil {
		return false
	}
	ok, err := afero.DirExists(s.fs, s.Path(entry))
	return err == nil && ok
}

// List returns the installed entries in lexical order. A missing store
// directory yields an empty list.
func (s *Store) List() ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.base)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing collection store %s: %w", s.base, err)
	}

	entries := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() && !isStagingName(info.Name()) {
			entries = append(entries, info.Name())
		}
	}
	slices.Sort(entries)
	return entries, nil
}

// FindByNamePrefix returns the entries that belong to the named collection
// ("<name>-..."), in lexical order.
func (s *Store) FindByNamePrefix(name collection.CollectionName) ([]string, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}

	prefix := string(name) + string(collection.SeparatorEntry)
	var matches []string
	for _, e := range entries {
		if strings.HasPrefix(e, prefix) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// RemoveEntry deletes an installed entry and everything below it.
func (s *Store) RemoveEntry(entry string) error {
	if err := validEntryName(entry); err != nil {
		return err
	}
	if err := s.fs.RemoveAll(s.Path(entry)); err != nil {
		return fmt.Errorf("%w: removing %s: %w", ErrStoreIO, s.Path(entry), err)
	}
	return nil
}

// validEntryName rejects names that would resolve outside the store.
func validEntryName(entry string) error {
	if entry == "" || entry == "." || entry == ".." || strings.ContainsAny(entry, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidEntryName, entry)
	}
	return nil
}
