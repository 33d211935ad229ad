// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"errors"
	"fmt"

	"github.com/fpgawars/icm/pkg/collection"
)

// ErrLatestVersionUnknown is returned when no version was requested and the
// collection manifest could not supply one.
var ErrLatestVersionUnknown = errors.New("latest collection version unknown")

type (
	// ManifestError reports that the latest version of a collection could
	// not be determined from its manifest. Err carries the underlying cause.
	ManifestError struct {
		Name collection.CollectionName
		URL  string
		Err  error
	}

	// ExtractError reports an extraction failure. The downloaded archive is
	// kept at Archive for inspection or manual cleanup.
	ExtractError struct {
		Archive string
		Err     error
	}
)

// Error implements the error interface.
func (e *ManifestError) Error() string {
	return fmt.Sprintf("collection %s: no usable package.json at %s: %v", e.Name, e.URL, e.Err)
}

// Unwrap exposes both ErrLatestVersionUnknown and the underlying cause.
func (e *ManifestError) Unwrap() []error { return []error{ErrLatestVersionUnknown, e.Err} }

// Error implements the error interface.
func (e *ExtractError) Error() string {
	return fmt.Sprintf("extracting %s: %v (archive left on disk)", e.Archive, e.Err)
}

// Unwrap returns the underlying extraction error.
func (e *ExtractError) Unwrap() error { return e.Err }
