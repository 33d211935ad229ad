// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newInfoCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show system information and Icestudio folders",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), app)
		},
	}
}

func runInfo(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return app.fail(err)
	}
	collections, err := cfg.ResolveCollectionsDir()
	if err != nil {
		return app.fail(err)
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("System information"))
	infoLine(app, "icm", getVersionString())
	infoLine(app, "System", runtime.GOOS)
	infoLine(app, "Architecture", runtime.GOARCH)
	infoLine(app, "Go runtime", runtime.Version())

	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, TitleStyle.Render("Folders"))

	home, err := os.UserHomeDir()
	if err != nil {
		return app.fail(err)
	}
	folderLine(app, "HOME", home)
	folderLine(app, "Icestudio", filepath.Join(home, ".icestudio"))
	folderLine(app, "Collections", collections)
	return nil
}

func infoLine(app *App, label, value string) {
	fmt.Fprintf(app.stdout, "• %s %s\n", CmdStyle.Render(label+":"), value)
}

func folderLine(app *App, label, dir string) {
	mark := errorIcon
	if ok, err := afero.DirExists(app.Fs, dir); err == nil && ok {
		mark = successIcon
	}
	fmt.Fprintf(app.stdout, "%s %s %s\n", mark, CmdStyle.Render(label+":"), dir)
}
