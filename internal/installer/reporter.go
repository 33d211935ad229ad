// SPDX-License-Identifier: MPL-2.0

package installer

import "github.com/fpgawars/icm/internal/progress"

const (
	// PhaseDownload covers streaming the archive to disk.
	PhaseDownload Phase = iota + 1
	// PhaseExtract covers unpacking the archive into the store.
	PhaseExtract
)

type (
	// Phase is a long-running step of a single install.
	Phase int

	// Reporter renders the progress of install phases. Begin returns the sink
	// that receives progress for the phase; End is always called afterwards
	// with the phase outcome.
	Reporter interface {
		Begin(phase Phase, label string) progress.Func
		End(phase Phase, label string, err error)
	}

	nopReporter struct{}
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDownload:
		return "download"
	case PhaseExtract:
		return "extract"
	}
	return "unknown"
}

func (nopReporter) Begin(Phase, string) progress.Func { return nil }

func (nopReporter) End(Phase, string, error) {}
