// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Config holds common configuration for TUI components.
type Config struct {
	// Accessible enables line-oriented prompts for screen readers and pipes.
	Accessible bool
	// Input is where prompts read answers from.
	Input io.Reader
	// Output is where prompts and progress bars are written.
	Output io.Writer
}

// DefaultConfig returns the configuration for the current process. Accessible
// mode is enabled when stdin is not a terminal or ACCESSIBLE is set. Output
// always goes to stderr so it never mixes with listings on stdout.
func DefaultConfig() Config {
	return Config{
		Accessible: !IsTerminal(os.Stdin) || os.Getenv("ACCESSIBLE") != "",
		Input:      os.Stdin,
		Output:     os.Stderr,
	}
}

// IsTerminal reports whether f is connected to a terminal. Anything that is
// not an *os.File is never a terminal.
func IsTerminal(f any) bool {
	if file, ok := f.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func (c Config) input() io.Reader {
	if c.Input == nil {
		return os.Stdin
	}
	return c.Input
}

func (c Config) output() io.Writer {
	if c.Output == nil {
		return os.Stderr
	}
	return c.Output
}

func theme() *huh.Theme {
	return huh.ThemeBase()
}
