// SPDX-License-Identifier: MPL-2.0

package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ManifestFileName is the name of the manifest at the root of every collection.
const ManifestFileName = "package.json"

// ErrInvalidManifest is the sentinel error wrapped by InvalidManifestError.
var ErrInvalidManifest = errors.New("invalid collection manifest")

type (
	// Manifest is the package.json descriptor published at the root of a
	// collection repository. Name, Version and Description are required;
	// the remaining fields only feed README generation and are decoded
	// leniently: a value of an unexpected type is dropped.
	Manifest struct {
		Name         string      `json:"name"`
		Version      string      `json:"version"`
		Description  string      `json:"description"`
		Keywords     []string    `json:"keywords,omitempty"`
		License      string      `json:"license,omitempty"`
		Logo         string      `json:"logo,omitempty"`
		Wiki         string      `json:"wiki,omitempty"`
		Authors      []Person    `json:"authors,omitempty"`
		Contributors []Person    `json:"contributors,omitempty"`
		Repository   *Repository `json:"repository,omitempty"`
	}

	// Person is an author or contributor entry.
	Person struct {
		Name  string `json:"name"`
		Email string `json:"email,omitempty"`
		URL   string `json:"url,omitempty"`
	}

	// Repository points at the collection's source repository.
	Repository struct {
		Type   string `json:"type,omitempty"`
		URL    string `json:"url,omitempty"`
		Branch string `json:"branch,omitempty"`
	}

	// wireManifest holds the required fields strictly typed and every
	// optional field raw.
	wireManifest struct {
		Name         string          `json:"name"`
		Version      string          `json:"version"`
		Description  string          `json:"description"`
		Keywords     json.RawMessage `json:"keywords"`
		License      json.RawMessage `json:"license"`
		Logo         json.RawMessage `json:"logo"`
		Wiki         json.RawMessage `json:"wiki"`
		Authors      json.RawMessage `json:"authors"`
		Contributors json.RawMessage `json:"contributors"`
		Repository   json.RawMessage `json:"repository"`
	}

	// InvalidManifestError is returned when a manifest is missing required
	// fields. It wraps ErrInvalidManifest for errors.Is() compatibility.
	InvalidManifestError struct {
		MissingFields []string
	}
)

// DecodeManifest reads a manifest from r and validates its required fields.
// A mistyped required field is a decode error; mistyped optional fields are
// ignored.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// UnmarshalJSON decodes the required fields strictly and the optional ones
// leniently. Keywords may be a string or a list, repository a URL string or
// an object, and authors or contributors a name, a person or a list of either.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var w wireManifest
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*m = Manifest{
		Name:         w.Name,
		Version:      w.Version,
		Description:  w.Description,
		Keywords:     decodeStrings(w.Keywords),
		License:      decodeString(w.License),
		Logo:         decodeString(w.Logo),
		Wiki:         decodeString(w.Wiki),
		Authors:      decodePeople(w.Authors),
		Contributors: decodePeople(w.Contributors),
		Repository:   decodeRepository(w.Repository),
	}
	return nil
}

// Validate checks that every required field is present.
func (m *Manifest) Validate() error {
	var missing []string
	if strings.TrimSpace(m.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(m.Version) == "" {
		missing = append(missing, "version")
	}
	if strings.TrimSpace(m.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return &InvalidManifestError{MissingFields: missing}
	}
	return nil
}

// LatestVersion returns the manifest version as a collection Version,
// validating that it fits the install grammar.
func (m *Manifest) LatestVersion() (Version, error) {
	v := Version(m.Version)
	if v == "" {
		return "", &InvalidVersionError{Value: v}
	}
	if ok, errs := v.IsValid(); !ok {
		return "", errs[0]
	}
	return v, nil
}

// RepositoryBranch returns the configured branch, defaulting to DevBranch.
func (m *Manifest) RepositoryBranch() string {
	if m.Repository == nil || m.Repository.Branch == "" {
		return DevBranch
	}
	return m.Repository.Branch
}

// Error implements the error interface.
func (e *InvalidManifestError) Error() string {
	return "invalid collection manifest: missing " + strings.Join(e.MissingFields, ", ")
}

// Unwrap returns ErrInvalidManifest so callers can use errors.Is for programmatic detection.
func (e *InvalidManifestError) Unwrap() error { return ErrInvalidManifest }

func decodeString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func decodeStrings(raw json.RawMessage) []string {
	if s := decodeString(raw); s != "" {
		return []string{s}
	}
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		if s := decodeString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func decodePerson(raw json.RawMessage) (Person, bool) {
	if name := decodeString(raw); name != "" {
		return Person{Name: name}, true
	}
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil || fields == nil {
		return Person{}, false
	}
	p := Person{
		Name:  decodeString(fields["name"]),
		Email: decodeString(fields["email"]),
		URL:   decodeString(fields["url"]),
	}
	return p, p != Person{}
}

func decodePeople(raw json.RawMessage) []Person {
	if p, ok := decodePerson(raw); ok {
		return []Person{p}
	}
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []Person
	for _, item := range items {
		if p, ok := decodePerson(item); ok {
			out = append(out, p)
		}
	}
	return out
}

func decodeRepository(raw json.RawMessage) *Repository {
	if url := decodeString(raw); url != "" {
		return &Repository{URL: url}
	}
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil || fields == nil {
		return nil
	}
	return &Repository{
		Type:   decodeString(fields["type"]),
		URL:    decodeString(fields["url"]),
		Branch: decodeString(fields["branch"]),
	}
}
