// SPDX-License-Identifier: MPL-2.0

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fpgawars/icm/pkg/collection"
)

const (
	// RemoveDeleted means one entry was deleted.
	RemoveDeleted RemoveOutcome = iota + 1
	// RemoveNotFound means no entry matched; nothing changed.
	RemoveNotFound
	// RemoveAborted means a candidate was found but the user declined.
	RemoveAborted
)

// ErrConfirmationRequired is returned when a removal needs confirmation but
// neither a Confirmer nor Yes was supplied.
var ErrConfirmationRequired = errors.New("confirmation required")

type (
	// RemoveOutcome is the terminal state of a removal request.
	RemoveOutcome int

	// Confirmer asks the user a yes/no question.
	Confirmer interface {
		Confirm(prompt string) (bool, error)
	}

	// ConfirmFunc adapts a function to the Confirmer interface.
	ConfirmFunc func(prompt string) (bool, error)

	// RemoveOptions controls how ambiguous removals are confirmed.
	RemoveOptions struct {
		// Yes answers every confirmation affirmatively.
		Yes bool
		// Confirm is consulted for prefix matches unless Yes is set.
		Confirm Confirmer
	}

	// RemoveResult describes what a removal request did.
	RemoveResult struct {
		Outcome RemoveOutcome
		// Entry is the entry deleted, or the one declined when aborted.
		Entry string
		// Candidates lists every prefix match when the fallback search ran.
		Candidates []string
		// Searched reports whether the name-prefix fallback ran.
		Searched bool
	}
)

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// String returns a human-readable outcome.
func (o RemoveOutcome) String() string {
	switch o {
	case RemoveDeleted:
		return "deleted"
	case RemoveNotFound:
		return "not found"
	case RemoveAborted:
		return "aborted"
	}
	return fmt.Sprintf("RemoveOutcome(%d)", int(o))
}

// Remove resolves tag against the store and deletes at most one entry.
//
// Resolution order:
//  1. tag names an existing entry: delete it without confirmation.
//  2. tag parses as name and version ("iceK-0.1.4" or "iceK@0.1.4"): delete
//     that entry if present, otherwise report not found without searching.
//  3. tag is a bare name, or its version part does not parse: take the first
//     entry starting with "<name>-" and delete it after confirmation.
func (s *Store) Remove(tag string, opts RemoveOptions) (RemoveResult, error) {
	if validEntryName(tag) == nil && s.Exists(tag) {
		if err := s.RemoveEntry(tag); err != nil {
			return RemoveResult{}, err
		}
		return RemoveResult{Outcome: RemoveDeleted, Entry: tag}, nil
	}

	name, pinned, ok := parseRemoveTag(tag)
	if !ok {
		return RemoveResult{Outcome: RemoveNotFound}, nil
	}

	if pinned.HasVersion() {
		entry := pinned.EntryName()
		if !s.Exists(entry) {
			return RemoveResult{Outcome: RemoveNotFound}, nil
		}
		if err := s.RemoveEntry(entry); err != nil {
			return RemoveResult{}, err
		}
		return RemoveResult{Outcome: RemoveDeleted, Entry: entry}, nil
	}

	candidates, err := s.FindByNamePrefix(name)
	if err != nil {
		return RemoveResult{}, err
	}
	if len(candidates) == 0 {
		return RemoveResult{Outcome: RemoveNotFound, Searched: true}, nil
	}

	// Only the first match is removed even when several versions are installed.
	selected := candidates[0]
	result := RemoveResult{Entry: selected, Candidates: candidates, Searched: true}

	if !opts.Yes {
		if opts.Confirm == nil {
			return RemoveResult{}, fmt.Errorf("removing %s: %w", selected, ErrConfirmationRequired)
		}
		confirmed, err := opts.Confirm.Confirm(fmt.Sprintf("Remove collection %s?", selected))
		if err != nil {
			return RemoveResult{}, fmt.Errorf("confirmation prompt: %w", err)
		}
		if !confirmed {
			result.Outcome = RemoveAborted
			return result, nil
		}
	}

	if err := s.RemoveEntry(selected); err != nil {
		return RemoveResult{}, err
	}
	result.Outcome = RemoveDeleted
	return result, nil
}

// parseRemoveTag interprets a removal tag. A reference with a version is
// returned as pinned; otherwise name is what to search for. ok is false when
// no usable collection name can be recovered.
func parseRemoveTag(tag string) (name collection.CollectionName, pinned collection.Reference, ok bool) {
	for _, sep := range []collection.Separator{collection.SeparatorEntry, collection.SeparatorInstall} {
		if ref, err := collection.Parse(tag, sep); err == nil {
			return ref.Name, ref, true
		}
	}

	// The version part did not parse ("iceK-main", "iceK-beta"): fall back
	// to the text before the first separator, or the whole tag.
	before, _, _ := strings.Cut(tag, string(collection.SeparatorEntry))
	if validEntryName(before) != nil {
		return "", collection.Reference{}, false
	}
	candidate := collection.CollectionName(before)
	return candidate, collection.Reference{}, true
}
