// SPDX-License-Identifier: MPL-2.0

// Package installer drives collection installs and removals: it resolves a
// reference to a concrete build, skips builds already in the store, and
// otherwise downloads, extracts and cleans up one collection at a time.
package installer
