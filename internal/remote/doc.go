// SPDX-License-Identifier: MPL-2.0

// Package remote talks to the repositories that host icm collections.
//
// The package is organized into two concerns:
//   - locator.go: canonical URLs for archives and manifests, built from a
//     Templates value so tests can point them at a local server
//   - client.go: HTTP client for manifest retrieval (time bounded) and
//     streamed archive downloads with progress reporting
package remote
