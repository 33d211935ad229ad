// SPDX-License-Identifier: MPL-2.0

// Package scaffold manages the working tree of a collection under
// development: it creates the skeleton, validates the manifest and folder
// layout, and regenerates README.md and locale/translation.js from the
// collection contents.
package scaffold
