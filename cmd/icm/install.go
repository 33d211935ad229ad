// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fpgawars/icm/internal/archive"
	"github.com/fpgawars/icm/internal/installer"
	"github.com/fpgawars/icm/internal/issue"
	"github.com/fpgawars/icm/internal/remote"
	"github.com/fpgawars/icm/internal/store"
	"github.com/fpgawars/icm/pkg/collection"
)

var errNothingToInstall = errors.New("specify at least one collection or use --all")

type installParams struct {
	refs []string
	dev  bool
	all  bool
}

func newInstallCommand(app *App) *cobra.Command {
	var params installParams

	cmd := &cobra.Command{
		Use:   "install [collection[@version]...]",
		Short: "Install collections into the local store",
		Long: `Install collections into the local store.

Without a version, the latest release announced by the collection's
package.json is installed. With --dev the main branch is installed and any
version is ignored. Builds already in the store are skipped.`,
		Example: `  icm install iceK
  icm install iceK@0.1.4 iceFF
  icm install --dev iceK
  icm install --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.refs = args
			if len(params.refs) == 0 && !params.all {
				return usageError(errNothingToInstall)
			}
			return runInstall(cmd.Context(), app, params)
		},
	}

	cmd.Flags().BoolVarP(&params.dev, "dev", "d", false, "install the development (main branch) build")
	cmd.Flags().BoolVarP(&params.all, "all", "a", false, "install every stable collection")

	return cmd
}

// runInstall installs the stable catalog (with --all) followed by the
// named references, reporting each item as it completes.
func runInstall(ctx context.Context, app *App, p installParams) error {
	s, err := app.session(ctx)
	if err != nil {
		return app.fail(err)
	}

	var batch installer.BatchResult
	if p.all {
		batch.Items = append(batch.Items, s.installer.InstallAllStable(ctx, p.dev).Items...)
	}
	if len(p.refs) > 0 {
		batch.Items = append(batch.Items, s.installer.InstallMany(ctx, p.refs, p.dev).Items...)
	}

	for _, item := range batch.Items {
		app.reportInstall(item)
	}

	if len(batch.Items) > 1 {
		fmt.Fprintf(app.stdout, "\n%d installed, %d already installed, %d failed\n",
			batch.Count(installer.OutcomeInstalled),
			batch.Count(installer.OutcomeSkipped),
			len(batch.Failed()))
	}

	if !batch.OK() {
		return &ExitError{Code: ExitFailure}
	}
	return nil
}

func (a *App) reportInstall(item installer.Item) {
	if item.Err != nil {
		err := installError(item.Raw, item.Err)
		fmt.Fprintf(a.stderr, "%s %s\n", errorIcon, formatErrorForDisplay(err, a.flags.verbose))
		a.renderIssue(err)
		return
	}

	res := item.Result
	switch res.Outcome {
	case installer.OutcomeSkipped:
		fmt.Fprintf(a.stdout, "%s %s already installed\n", warningIcon, CmdStyle.Render(res.Location.EntryName))
	default:
		fmt.Fprintf(a.stdout, "%s %s installed in %s\n", successIcon, CmdStyle.Render(res.Location.EntryName), res.Path)
	}
}

// installError adds remediation hints to an install failure.
func installError(raw string, err error) error {
	ec := issue.NewErrorContext().
		WithOperation("install collection").
		WithResource(raw).
		Wrap(err)

	var extractErr *installer.ExtractError
	switch {
	case errors.Is(err, collection.ErrInvalidReference):
		ec.WithIssue(issue.InvalidReferenceId).
			WithSuggestion("Use <name> or <name>@<major>.<minor>[.<patch>], e.g. iceK@0.1.4")
	case errors.Is(err, installer.ErrLatestVersionUnknown):
		ec.WithIssue(issue.ManifestUnavailableId).
			WithSuggestions(
				"Pin a version: icm install "+nameOf(raw)+"@<version>",
				"Install the development build: icm install --dev "+nameOf(raw),
			)
	case errors.Is(err, store.ErrStoreIO):
		ec.WithIssue(issue.StoreNotWritableId).
			WithSuggestion("Check the permissions of the collections folder or pick another one with --collections-dir")
	case errors.As(err, &extractErr):
		ec.WithIssue(issue.ArchiveCorruptId).
			WithSuggestion("The downloaded archive was kept at " + extractErr.Archive)
		if errors.Is(err, archive.ErrUnsafePath) {
			ec.WithSuggestion("The archive contains unsafe paths; report it to the collection maintainers")
		}
	case errors.Is(err, remote.ErrUnexpectedStatus):
		ec.WithIssue(issue.DownloadFailedId).
			WithSuggestion("Check that the collection and version exist: icm lsgit")
	case errors.Is(err, context.Canceled):
		// Interrupted by the user; no hint needed.
	default:
		ec.WithIssue(issue.DownloadFailedId).
			WithSuggestion("Check your network connection and retry")
	}

	return ec.BuildError()
}

func nameOf(raw string) string {
	name, _, _ := strings.Cut(raw, string(collection.SeparatorInstall))
	return name
}
