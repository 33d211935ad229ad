// SPDX-License-Identifier: MPL-2.0

// Package progress defines the sink through which long-running transfers
// report how far along they are, decoupled from any terminal rendering.
package progress

// Unknown is passed as total when the size of a transfer is not known upfront.
const Unknown int64 = -1

// Func receives cumulative progress. total is Unknown when the transfer size
// cannot be determined; current never decreases within one transfer.
type Func func(current, total int64)

// Report calls f when it is non-nil.
func (f Func) Report(current, total int64) {
	if f != nil {
		f(current, total)
	}
}

// Percent returns current/total clamped to [0, 1], or 0 when total is unknown.
func Percent(current, total int64) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(current) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
