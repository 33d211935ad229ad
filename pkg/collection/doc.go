// SPDX-License-Identifier: MPL-2.0

// Package collection defines the value types shared by every icm command:
// collection references as typed by users, the naming conventions used for
// downloaded archives and installed store entries, and the package.json
// manifest published by each collection repository.
//
// Everything in this package is pure: no network or filesystem access.
package collection
