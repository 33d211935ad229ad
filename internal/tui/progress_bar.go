// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"io"

	bar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/fpgawars/icm/internal/installer"
	"github.com/fpgawars/icm/internal/progress"
)

const (
	barWidth = 40

	// clearLine returns the cursor to column 0 and erases the line.
	clearLine = "\r\033[2K"
)

var (
	doneMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Render("✓")
	failedMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Render("✗")
)

// ProgressReporter renders install phases as progress bars.
//
// In live mode the bar is redrawn in place on every update; otherwise only
// the final line of each phase is printed, which keeps logs readable.
type ProgressReporter struct {
	out   io.Writer
	live  bool
	model bar.Model
}

var _ installer.Reporter = (*ProgressReporter)(nil)

// NewProgressReporter creates a reporter writing to out. live enables
// in-place redrawing and should only be set for terminals.
func NewProgressReporter(out io.Writer, live bool) *ProgressReporter {
	return &ProgressReporter{
		out:   out,
		live:  live,
		model: bar.New(bar.WithDefaultGradient(), bar.WithWidth(barWidth)),
	}
}

// Begin implements installer.Reporter.
func (r *ProgressReporter) Begin(phase installer.Phase, label string) progress.Func {
	if !r.live {
		return nil
	}
	title := phaseTitle(phase, label)
	return func(current, total int64) {
		fmt.Fprint(r.out, clearLine+title+" "+r.render(phase, current, total))
	}
}

// End implements installer.Reporter.
func (r *ProgressReporter) End(phase installer.Phase, label string, err error) {
	if r.live {
		fmt.Fprint(r.out, clearLine)
	}
	if err != nil {
		fmt.Fprintf(r.out, "%s %s failed\n", failedMark, phaseTitle(phase, label))
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", doneMark, phaseTitle(phase, label))
}

// render draws the bar, or a running byte count when the total is unknown.
func (r *ProgressReporter) render(phase installer.Phase, current, total int64) string {
	if total == progress.Unknown {
		return humanize.IBytes(uint64(max(current, 0)))
	}
	view := r.model.ViewAs(progress.Percent(current, total))
	if phase == installer.PhaseExtract {
		return fmt.Sprintf("%s %d/%d", view, current, total)
	}
	return fmt.Sprintf("%s %s", view, humanize.IBytes(uint64(max(current, 0))))
}

func phaseTitle(phase installer.Phase, label string) string {
	switch phase {
	case installer.PhaseDownload:
		return "Downloading " + label
	case installer.PhaseExtract:
		return "Extracting " + label
	}
	return label
}
