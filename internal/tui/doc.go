// SPDX-License-Identifier: MPL-2.0

// Package tui provides the terminal interactions icm needs: yes/no
// confirmation prompts built on huh and progress bars rendered with the
// bubbles progress model.
//
// Components fall back to accessible, line-oriented output when stdin is not
// a terminal, so icm stays usable from scripts and CI logs.
package tui
