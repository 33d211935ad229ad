// SPDX-License-Identifier: MPL-2.0

// Package testutil provides fixtures shared by package tests: collection
// archives shaped like the hosting service's downloads and an isolated home
// directory.
package testutil
