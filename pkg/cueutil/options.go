// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
)

// DefaultMaxFileSize bounds the documents handed to CUE (4 MiB).
const DefaultMaxFileSize = 4 << 20

// ErrFileTooLarge is returned by CheckFileSize.
var ErrFileTooLarge = errors.New("file too large")

type (
	// Option configures a parse.
	Option func(*options)

	options struct {
		filename    string
		maxFileSize int
		concrete    bool
	}
)

func defaultOptions() options {
	return options{maxFileSize: DefaultMaxFileSize, concrete: true}
}

// WithFilename names the document in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxFileSize = n
		}
	}
}

// WithConcrete controls whether every field must resolve to a concrete
// value. Documents where all fields are optional pass false.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}

// CheckFileSize rejects data longer than limit bytes.
func CheckFileSize(data []byte, limit int, filename string) error {
	if len(data) > limit {
		return fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, filename, len(data), limit)
	}
	return nil
}
