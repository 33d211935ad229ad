// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fpgawars/icm/internal/issue"
	"github.com/fpgawars/icm/internal/scaffold"
)

func newCreateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a collection skeleton in the current directory",
		Long: `Create the structure of a new collection in the current directory:
blocks/, examples/ and locale/ folders plus LICENSE, package.json and
README.md. Existing items are left untouched.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.stdout, TitleStyle.Render("Create a collection structure"))

			changes, err := scaffold.New(app.Fs, app.workDir).Create()
			app.printChanges(changes)
			if err != nil {
				return app.fail(err)
			}
			return nil
		},
	}
}

func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the collection in the current directory",
		Long: `Check that the current directory is a collection: package.json must
declare a name, a version and a description, and at least one of the
blocks/ and examples/ folders must exist.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.stdout, TitleStyle.Render("Validate the collection"))

			m, err := scaffold.New(app.Fs, app.workDir).Validate()
			if err != nil {
				return app.fail(collectionError("validate collection", app.workDir, err))
			}
			fmt.Fprintf(app.stdout, "%s %s %s is valid\n", successIcon, CmdStyle.Render(m.Name), m.Version)
			return nil
		},
	}
}

func newUpdateCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Regenerate README.md and locale/translation.js",
		Long: `Regenerate README.md from package.json and the blocks and examples trees,
and locale/translation.js from the folder, design and description names.
Files whose content changed are only replaced after confirmation.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.stdout, TitleStyle.Render("Update the collection"))

			changes, err := scaffold.New(app.Fs, app.workDir).Update(scaffold.UpdateOptions{Yes: yes, Confirm: app.Confirm})
			app.printChanges(changes)
			if err != nil {
				return app.fail(collectionError("update collection", app.workDir, err))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace outdated files without asking")

	return cmd
}

func (a *App) printChanges(changes []scaffold.Change) {
	for _, c := range changes {
		style := SuccessStyle
		switch c.Action {
		case scaffold.ActionExists, scaffold.ActionUnchanged:
			style = WarningStyle
		case scaffold.ActionKept:
			style = ErrorStyle
		}
		fmt.Fprintln(a.stdout, style.Render(" - "+c.String()))
	}
}

func collectionError(op, dir string, err error) error {
	ec := issue.NewErrorContext().WithOperation(op).WithResource(dir).Wrap(err)
	if errors.Is(err, scaffold.ErrInvalidCollection) {
		ec.WithIssue(issue.NotACollectionId).
			WithSuggestion("Run 'icm create' to lay out a new collection")
	}
	if errors.Is(err, scaffold.ErrConfirmationRequired) {
		ec.WithSuggestion("Pass --yes to replace outdated files")
	}
	return ec.BuildError()
}
