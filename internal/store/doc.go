// SPDX-License-Identifier: MPL-2.0

// Package store manages the local collection store: a directory whose
// subdirectories ("<name>-<version>" or "<name>-main") are the installed
// collections. There is no index or lock file; directory presence is the
// single source of truth.
//
// Extractions go through a hidden staging directory that is renamed into
// place once complete, so a failed install never leaves a half-populated
// entry behind. The store does not guard against other processes changing
// the directory concurrently.
package store
