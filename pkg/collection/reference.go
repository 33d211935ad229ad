// SPDX-License-Identifier: MPL-2.0

package collection

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	// SeparatorInstall joins name and version in install-facing references ("iceK@0.1.4").
	SeparatorInstall Separator = '@'
	// SeparatorEntry joins name and version in store entry names ("iceK-0.1.4").
	SeparatorEntry Separator = '-'
)

var (
	// ErrInvalidReference is the sentinel error wrapped by InvalidReferenceError.
	ErrInvalidReference = errors.New("invalid collection reference")
	// ErrInvalidCollectionName is the sentinel error wrapped by InvalidCollectionNameError.
	ErrInvalidCollectionName = errors.New("invalid collection name")
	// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
	ErrInvalidVersion = errors.New("invalid collection version")

	namePattern    = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	versionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

	referencePatterns = map[Separator]*regexp.Regexp{
		SeparatorInstall: regexp.MustCompile(`^([A-Za-z0-9]+)(?:@(\d+\.\d+(?:\.\d+)?))?$`),
		SeparatorEntry:   regexp.MustCompile(`^([A-Za-z0-9]+)(?:-(\d+\.\d+(?:\.\d+)?))?$`),
	}
)

type (
	// Separator is the character placed between name and version in a textual reference.
	Separator rune

	// CollectionName is the alphanumeric name of a collection repository (e.g., "iceK").
	CollectionName string

	// Version is a "major.minor[.patch]" collection version. The zero value
	// means "no version given" and selects the development (main) build.
	Version string

	// Reference identifies a collection and, optionally, one of its versions.
	// References are only produced by Parse, so a non-zero Reference always
	// satisfies the grammar.
	Reference struct {
		Name    CollectionName
		Version Version
	}

	// InvalidReferenceError is returned when a raw string does not match the
	// reference grammar. It wraps ErrInvalidReference for errors.Is().
	InvalidReferenceError struct {
		Raw       string
		Separator Separator
	}

	// InvalidCollectionNameError is returned when a CollectionName is empty or
	// contains characters other than ASCII letters and digits.
	InvalidCollectionNameError struct {
		Value CollectionName
	}

	// InvalidVersionError is returned when a non-empty Version is not of the
	// form major.minor or major.minor.patch.
	InvalidVersionError struct {
		Value Version
	}
)

// Parse parses raw as "<name>" or "<name><sep><version>".
// On failure the returned Reference is the zero value.
func Parse(raw string, sep Separator) (Reference, error) {
	pattern, ok := referencePatterns[sep]
	if !ok {
		return Reference{}, fmt.Errorf("unsupported reference separator %q", rune(sep))
	}

	m := pattern.FindStringSubmatch(raw)
	if m == nil {
		return Reference{}, &InvalidReferenceError{Raw: raw, Separator: sep}
	}

	return Reference{Name: CollectionName(m[1]), Version: Version(m[2])}, nil
}

// HasVersion reports whether the reference pins a version.
func (r Reference) HasVersion() bool { return r.Version != "" }

// String renders the reference in install form ("iceK" or "iceK@0.1.4").
func (r Reference) String() string {
	if !r.HasVersion() {
		return string(r.Name)
	}
	return string(r.Name) + string(SeparatorInstall) + string(r.Version)
}

// EntryName returns the store entry name for the reference.
func (r Reference) EntryName() string { return EntryName(r.Name, r.Version) }

// WithVersion returns a copy of r pinned to v.
func (r Reference) WithVersion(v Version) Reference {
	return Reference{Name: r.Name, Version: v}
}

// Error implements the error interface.
func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid collection reference %q (expected name or name%cmajor.minor[.patch])", e.Raw, rune(e.Separator))
}

// Unwrap returns ErrInvalidReference so callers can use errors.Is for programmatic detection.
func (e *InvalidReferenceError) Unwrap() error { return ErrInvalidReference }

// IsValid returns whether the name is non-empty and alphanumeric,
// and a list of validation errors if it is not.
func (n CollectionName) IsValid() (bool, []error) {
	if !namePattern.MatchString(string(n)) {
		return false, []error{&InvalidCollectionNameError{Value: n}}
	}
	return true, nil
}

// String returns the string representation of the CollectionName.
func (n CollectionName) String() string { return string(n) }

// Error implements the error interface.
func (e *InvalidCollectionNameError) Error() string {
	return fmt.Sprintf("invalid collection name %q (letters and digits only)", e.Value)
}

// Unwrap returns ErrInvalidCollectionName so callers can use errors.Is for programmatic detection.
func (e *InvalidCollectionNameError) Unwrap() error { return ErrInvalidCollectionName }

// IsValid returns whether the version is empty or well formed,
// and a list of validation errors if it is not.
func (v Version) IsValid() (bool, []error) {
	if v == "" || versionPattern.MatchString(string(v)) {
		return true, nil
	}
	return false, []error{&InvalidVersionError{Value: v}}
}

// String returns the string representation of the Version.
func (v Version) String() string { return string(v) }

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid collection version %q (expected major.minor[.patch])", e.Value)
}

// Unwrap returns ErrInvalidVersion so callers can use errors.Is for programmatic detection.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }
