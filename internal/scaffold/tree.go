// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

var (
	descriptionPattern = regexp.MustCompile(`"description":\s*"(.*?)"`)
	// Only read-only info blocks carry user-facing text.
	infoPattern = regexp.MustCompile(`"info":\s*"(.*?)",[\n|\s]*"readonly": true`)
)

// iceTree renders the folders and .ice designs below root as a nested
// markdown list. Each folder lists its designs before its subfolders;
// ice-build folders are skipped. A missing root yields "".
func (s *Scaffolder) iceTree(root string) (string, error) {
	var sb strings.Builder
	err := s.walkIce(root, 0, func(rel string, depth int, info os.FileInfo) error {
		indent := strings.Repeat("  ", depth)
		if info.IsDir() {
			fmt.Fprintf(&sb, "%s* **%s**\n", indent, info.Name())
			return nil
		}
		fmt.Fprintf(&sb, "%s* %s\n", indent, strings.TrimSuffix(info.Name(), iceExt))
		return nil
	})
	return sb.String(), err
}

// translatableTexts collects, in tree order, every folder name, design name
// and the description and read-only info strings inside each design.
// Strings found inside designs are deduplicated against what came before.
func (s *Scaffolder) translatableTexts(root string, texts []string) ([]string, error) {
	err := s.walkIce(root, 0, func(rel string, _ int, info os.FileInfo) error {
		if info.IsDir() {
			texts = append(texts, info.Name())
			return nil
		}
		texts = append(texts, strings.TrimSuffix(info.Name(), iceExt))

		data, err := afero.ReadFile(s.fs, s.path(rel))
		if err != nil {
			return fmt.Errorf("reading %s: %w", s.path(rel), err)
		}
		for _, pattern := range []*regexp.Regexp{descriptionPattern, infoPattern} {
			for _, match := range pattern.FindAllSubmatch(data, -1) {
				text := string(match[1])
				if text != "" && !slices.Contains(texts, text) {
					texts = append(texts, text)
				}
			}
		}
		return nil
	})
	return texts, err
}

// walkIce visits the .ice files of dir, then each subfolder (reported with
// the depth of its contents' parent) recursively, all in lexical order.
func (s *Scaffolder) walkIce(dir string, depth int, visit func(rel string, depth int, info os.FileInfo) error) error {
	infos, err := afero.ReadDir(s.fs, s.path(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("listing %s: %w", s.path(dir), err)
	}

	var subdirs []os.FileInfo
	for _, info := range infos {
		switch {
		case info.IsDir():
			if info.Name() != buildDir {
				subdirs = append(subdirs, info)
			}
		case path.Ext(info.Name()) == iceExt:
			if err := visit(path.Join(dir, info.Name()), depth, info); err != nil {
				return err
			}
		}
	}

	for _, info := range subdirs {
		rel := path.Join(dir, info.Name())
		if err := visit(rel, depth, info); err != nil {
			return err
		}
		if err := s.walkIce(rel, depth+1, visit); err != nil {
			return err
		}
	}
	return nil
}
