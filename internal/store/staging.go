// SPDX-License-Identifier: MPL-2.0

package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// stagingPrefix marks directories that hold an extraction in progress.
// List never reports them as installed entries.
const stagingPrefix = ".icm-staging-"

func isStagingName(name string) bool {
	return strings.HasPrefix(name, stagingPrefix)
}

// Stage creates an empty staging directory for entry, replacing any leftover
// from an interrupted run, and returns its path.
func (s *Store) Stage(entry string) (string, error) {
	if err := validEntryName(entry); err != nil {
		return "", err
	}
	dir := s.Path(stagingPrefix + entry)
	if err := s.fs.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("%w: clearing staging directory %s: %w", ErrStoreIO, dir, err)
	}
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating staging directory %s: %w", ErrStoreIO, dir, err)
	}
	return dir, nil
}

// Commit publishes a staged extraction under its final entry name. When the
// staged tree is a single top-level directory (the layout of repository
// archives) that directory becomes the entry; otherwise the staging
// directory itself does.
func (s *Store) Commit(entry, stagingDir string) error {
	if err := validEntryName(entry); err != nil {
		return err
	}

	infos, err := afero.ReadDir(s.fs, stagingDir)
	if err != nil {
		return fmt.Errorf("%w: reading staging directory %s: %w", ErrStoreIO, stagingDir, err)
	}
	src := stagingDir
	if len(infos) == 1 && infos[0].IsDir() {
		src = filepath.Join(stagingDir, infos[0].Name())
	}

	if err := s.fs.Rename(src, s.Path(entry)); err != nil {
		return fmt.Errorf("%w: publishing %s: %w", ErrStoreIO, entry, err)
	}
	if src != stagingDir {
		return s.Discard(stagingDir)
	}
	return nil
}

// Discard deletes a staging directory.
func (s *Store) Discard(stagingDir string) error {
	if err := s.fs.RemoveAll(stagingDir); err != nil {
		return fmt.Errorf("%w: discarding %s: %w", ErrStoreIO, stagingDir, err)
	}
	return nil
}
