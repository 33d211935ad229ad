// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/fpgawars/icm/internal/catalog"
	"github.com/fpgawars/icm/pkg/collection"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List installed collections",
		Long: `List the collections installed in the local store, one build per line,
ordered by name and then by version.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), app)
		},
	}
}

func runList(ctx context.Context, app *App) error {
	s, err := app.session(ctx)
	if err != nil {
		return app.fail(err)
	}

	entries, err := s.store.List()
	if err != nil {
		return app.fail(err)
	}
	if len(entries) == 0 {
		fmt.Fprintf(app.stderr, "No collections installed in %s\n", s.store.Base())
		return nil
	}

	slices.SortFunc(entries, collection.CompareEntries)
	for _, e := range entries {
		fmt.Fprintln(app.stdout, e)
	}
	return nil
}

func newListRemoteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lsgit",
		Short: "List the published collections",
		Long: `List the stable and development collections published by FPGAwars with
the latest version and description read from each repository. Collections
whose manifest cannot be fetched show ` + catalog.Unavailable + `.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListRemote(cmd.Context(), app)
		},
	}
}

func runListRemote(ctx context.Context, app *App) error {
	s, err := app.session(ctx)
	if err != nil {
		return app.fail(err)
	}

	lister := s.lister()
	for i, ch := range catalog.Channels() {
		if i > 0 {
			fmt.Fprintln(app.stdout)
		}
		entries := lister.Describe(ctx, ch, func(e catalog.Entry) {
			if e.Err != nil {
				s.logger.Debug("manifest unavailable", "collection", e.Name, "err", e.Err)
			}
		})
		catalog.RenderTable(app.stdout, ch.String()+" collections", entries)
	}

	if err := ctx.Err(); err != nil {
		return app.fail(err)
	}
	return nil
}
