// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/fpgawars/icm/internal/installer"
	"github.com/fpgawars/icm/internal/progress"
	"github.com/fpgawars/icm/internal/store"
)

// Confirm tests swap runConfirm and must not run in parallel.

func stubConfirm(t *testing.T, answer bool, err error) *ConfirmOptions {
	t.Helper()
	seen := new(ConfirmOptions)
	orig := runConfirm
	runConfirm = func(opts ConfirmOptions, result *bool) error {
		*seen = opts
		if err != nil {
			return err
		}
		*result = answer
		return nil
	}
	t.Cleanup(func() { runConfirm = orig })
	return seen
}

func TestConfirm_Answers(t *testing.T) {
	for _, want := range []bool{true, false} {
		seen := stubConfirm(t, want, nil)

		got, err := Confirm(ConfirmOptions{Title: "Delete iceK-0.1.4?"})
		if err != nil {
			t.Fatalf("Confirm() error: %v", err)
		}
		if got != want {
			t.Errorf("Confirm() = %v, want %v", got, want)
		}
		if seen.Affirmative != "Yes" || seen.Negative != "No" || seen.Title != "Delete iceK-0.1.4?" {
			t.Errorf("prompt options = %+v", *seen)
		}
	}
}

func TestConfirm_AbortIsDecline(t *testing.T) {
	stubConfirm(t, true, huh.ErrUserAborted)

	got, err := Confirm(ConfirmOptions{Title: "Delete?"})
	if err != nil || got {
		t.Errorf("Confirm() = %v, %v; want false, nil", got, err)
	}
}

func TestConfirm_Error(t *testing.T) {
	boom := errors.New("tty gone")
	stubConfirm(t, true, boom)

	if _, err := NewPrompter(Config{}).Confirm("Delete?"); !errors.Is(err, boom) {
		t.Errorf("Confirm() error = %v, want %v", err, boom)
	}
}

func TestPrompter_IsStoreConfirmer(t *testing.T) {
	var _ store.Confirmer = NewPrompter(DefaultConfig())
}

func TestIsTerminal_NonFile(t *testing.T) {
	t.Parallel()

	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is never a terminal")
	}
}

func TestProgressReporter_Static(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := NewProgressReporter(&out, false)

	if sink := r.Begin(installer.PhaseDownload, "iceK-0.1.4"); sink != nil {
		t.Error("static mode should not draw intermediate progress")
	}
	r.End(installer.PhaseDownload, "iceK-0.1.4", nil)
	r.End(installer.PhaseExtract, "iceK-0.1.4", errors.New("corrupt"))

	got := out.String()
	if !strings.Contains(got, "Downloading iceK-0.1.4\n") {
		t.Errorf("output %q lacks the download line", got)
	}
	if !strings.Contains(got, "Extracting iceK-0.1.4 failed\n") {
		t.Errorf("output %q lacks the failed extract line", got)
	}
	if strings.Contains(got, "\r") {
		t.Errorf("static output %q contains redraw codes", got)
	}
}

func TestProgressReporter_Live(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := NewProgressReporter(&out, true)

	sink := r.Begin(installer.PhaseDownload, "iceK-main")
	sink(0, progress.Unknown)
	sink(2048, progress.Unknown)
	if !strings.Contains(out.String(), "2.0 KiB") {
		t.Errorf("unknown-size progress %q should show a byte count", out.String())
	}

	out.Reset()
	extract := r.Begin(installer.PhaseExtract, "iceK-main")
	extract(1, 4)
	if !strings.Contains(out.String(), "1/4") || !strings.HasPrefix(out.String(), clearLine+"Extracting iceK-main ") {
		t.Errorf("extract progress = %q", out.String())
	}

	r.End(installer.PhaseExtract, "iceK-main", nil)
	if !strings.HasSuffix(out.String(), "Extracting iceK-main\n") {
		t.Errorf("final line = %q", out.String())
	}
}
