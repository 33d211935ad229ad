// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for icm.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/fpgawars/icm/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the icm command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "icm",
		Short: "Icestudio collection manager",
		Long: TitleStyle.Render("icm") + SubtitleStyle.Render(" - Icestudio collection manager") + `

icm installs, lists and removes Icestudio block collections published by
FPGAwars, and helps collection authors create, validate and document
their own collections.

Installed collections live in ~/.icestudio/collections, one folder per
build: <name>-<version> for releases, <name>-main for development builds.

` + SubtitleStyle.Render("Examples:") + `
  icm lsgit                 List the published collections
  icm install iceK          Install the latest iceK release
  icm install iceK@0.1.4    Install a specific release
  icm install -d iceK       Install the development build
  icm ls                    List installed collections
  icm rm iceK-0.1.4         Remove an installed build
  icm create                Start a new collection here`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/icm/config.cue)")
	root.PersistentFlags().StringVar(&app.flags.collectionsDir, "collections-dir", "", "collection store (default is ~/.icestudio/collections)")

	root.SetOut(app.stdout)
	root.SetErr(app.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(
		newInstallCommand(app),
		newRemoveCommand(app),
		newListCommand(app),
		newListRemoteCommand(app),
		newCreateCommand(app),
		newValidateCommand(app),
		newUpdateCommand(app),
		newInfoCommand(app),
		newConfigCommand(app),
	)

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the command tree. It is called
// by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(ExitFailure)
	}

	// fang overrides root.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}

// errorHandler skips failures the command already reported.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// fail reports err on stderr and returns an already-reported ExitError. In
// verbose mode the linked issue page is rendered below the error.
func (a *App) fail(err error) error {
	fmt.Fprintf(a.stderr, "%s %s\n", errorIcon, formatErrorForDisplay(err, a.flags.verbose))
	a.renderIssue(err)
	return &ExitError{Code: ExitFailure}
}

func (a *App) renderIssue(err error) {
	var ae *issue.ActionableError
	if !a.flags.verbose || !errors.As(err, &ae) || ae.Issue == 0 {
		return
	}
	page := issue.Get(ae.Issue)
	if page == nil {
		return
	}
	rendered, renderErr := page.Render(a.colorScheme.String())
	if renderErr != nil {
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// exactArgs and minArgs report argument count problems as usage errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
