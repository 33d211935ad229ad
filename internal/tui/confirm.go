// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

type (
	// ConfirmOptions configures a Confirm prompt.
	ConfirmOptions struct {
		// Title is the question to display.
		Title string
		// Description provides additional context below the title.
		Description string
		// Affirmative is the text for the affirmative option (default: "Yes").
		Affirmative string
		// Negative is the text for the negative option (default: "No").
		Negative string
		// Default is the preselected answer.
		Default bool
		// Config holds common TUI configuration.
		Config Config
	}

	// Prompter asks yes/no questions on the terminal. It satisfies the
	// confirmation capability of the collection store.
	Prompter struct {
		cfg Config
	}
)

// runConfirm shows the prompt and stores the answer in result; tests swap it out.
var runConfirm = func(opts ConfirmOptions, result *bool) error {
	field := huh.NewConfirm().
		Title(opts.Title).
		Description(opts.Description).
		Affirmative(opts.Affirmative).
		Negative(opts.Negative).
		Value(result)

	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(theme()).
		WithAccessible(opts.Config.Accessible).
		WithInput(opts.Config.input()).
		WithOutput(opts.Config.output()).
		Run()
}

// Confirm prompts the user to confirm an action. An aborted prompt (ctrl+c,
// esc) counts as a "no" rather than an error.
func Confirm(opts ConfirmOptions) (bool, error) {
	if opts.Affirmative == "" {
		opts.Affirmative = "Yes"
	}
	if opts.Negative == "" {
		opts.Negative = "No"
	}

	result := opts.Default
	if err := runConfirm(opts, &result); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	return result, nil
}

// NewPrompter returns a Prompter using cfg.
func NewPrompter(cfg Config) *Prompter {
	return &Prompter{cfg: cfg}
}

// Confirm asks prompt with "no" preselected.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	return Confirm(ConfirmOptions{Title: prompt, Config: p.cfg})
}
