// SPDX-License-Identifier: MPL-2.0

package installer

type (
	// Item is the outcome of one reference within a batch.
	Item struct {
		Raw    string
		Result Result
		Err    error
	}

	// BatchResult collects per-item outcomes of a batch install.
	BatchResult struct {
		Items []Item
	}
)

// OK reports whether every item succeeded.
func (b BatchResult) OK() bool {
	return len(b.Failed()) == 0
}

// Failed returns the items that ended in an error.
func (b BatchResult) Failed() []Item {
	var failed []Item
	for _, it := range b.Items {
		if it.Err != nil {
			failed = append(failed, it)
		}
	}
	return failed
}

// Count returns how many items ended with outcome o.
func (b BatchResult) Count(o Outcome) int {
	n := 0
	for _, it := range b.Items {
		if it.Err == nil && it.Result.Outcome == o {
			n++
		}
	}
	return n
}
