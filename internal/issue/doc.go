// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown help
// pages for the failures users hit most: bad references, unreachable
// collections, corrupt archives and unreadable configuration.
package issue
