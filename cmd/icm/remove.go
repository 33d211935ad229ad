// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fpgawars/icm/internal/issue"
	"github.com/fpgawars/icm/internal/store"
)

func newRemoveCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <entry|collection[-version]>...",
		Aliases: []string{"remove"},
		Short:   "Remove installed collections",
		Long: `Remove installed collections from the local store.

An exact entry name (iceK-0.1.4, iceK-main) is removed at once. A bare
collection name removes its first installed build after confirmation.
Each argument removes at most one build.`,
		Example: `  icm rm iceK-0.1.4
  icm rm iceK
  icm rm -y iceK`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), app, args, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "remove without asking for confirmation")

	return cmd
}

func runRemove(ctx context.Context, app *App, tags []string, yes bool) error {
	s, err := app.session(ctx)
	if err != nil {
		return app.fail(err)
	}

	failed := false
	for _, tag := range tags {
		res, err := s.installer.Remove(tag, store.RemoveOptions{Yes: yes, Confirm: app.Confirm})
		if err != nil {
			failed = true
			err = removeError(tag, err)
			fmt.Fprintf(app.stderr, "%s %s\n", errorIcon, formatErrorForDisplay(err, app.flags.verbose))
			app.renderIssue(err)
			continue
		}

		switch res.Outcome {
		case store.RemoveDeleted:
			fmt.Fprintf(app.stdout, "%s %s removed\n", successIcon, CmdStyle.Render(res.Entry))
		case store.RemoveAborted:
			fmt.Fprintf(app.stdout, "%s Aborted, %s not removed\n", warningIcon, CmdStyle.Render(res.Entry))
		case store.RemoveNotFound:
			fmt.Fprintf(app.stdout, "%s %s: no such collection\n", warningIcon, CmdStyle.Render(tag))
			app.renderIssue(issue.NewErrorContext().
				WithOperation("remove collection").
				WithResource(tag).
				WithIssue(issue.CollectionNotFoundId).
				BuildError())
		}
	}

	if failed {
		return &ExitError{Code: ExitFailure}
	}
	return nil
}

// removeError adds remediation hints to a removal failure.
func removeError(tag string, err error) error {
	ec := issue.NewErrorContext().
		WithOperation("remove collection").
		WithResource(tag).
		Wrap(err)
	if errors.Is(err, store.ErrStoreIO) {
		ec.WithIssue(issue.StoreNotWritableId)
	}
	return ec.BuildError()
}
