// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/fpgawars/icm/internal/catalog"
	"github.com/fpgawars/icm/internal/config"
	"github.com/fpgawars/icm/internal/installer"
	"github.com/fpgawars/icm/internal/remote"
	"github.com/fpgawars/icm/internal/store"
	"github.com/fpgawars/icm/internal/tui"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every command handler receives an App and builds the
	// services it needs through it.
	App struct {
		Config      ConfigProvider
		Fs          afero.Fs
		HTTPClient  *http.Client
		Confirm     Confirmer
		stdout      io.Writer
		stderr      io.Writer
		workDir     string
		live        bool
		colorScheme config.ColorScheme // glamour style for issue pages
		flags       globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config     ConfigProvider
		Fs         afero.Fs
		HTTPClient *http.Client
		Confirm    Confirmer
		Stdout     io.Writer
		Stderr     io.Writer
		// WorkDir is where create, validate and update operate; empty means
		// the process working directory.
		WorkDir string
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// Confirmer asks the user a yes/no question. It serves both removal and
	// README/translation replacement prompts.
	Confirmer interface {
		Confirm(prompt string) (bool, error)
	}

	// globalFlags holds the persistent root flags.
	globalFlags struct {
		verbose        bool
		configPath     string
		collectionsDir string
	}

	// session is the set of services built for one command invocation.
	session struct {
		cfg       *config.Config
		logger    *log.Logger
		store     *store.Store
		client    *remote.Client
		locator   *remote.Locator
		installer *installer.Installer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	live := false
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
		live = tui.IsTerminal(os.Stderr)
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.HTTPClient == nil {
		deps.HTTPClient = http.DefaultClient
	}
	if deps.Confirm == nil {
		deps.Confirm = tui.NewPrompter(tui.DefaultConfig())
	}
	if deps.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		deps.WorkDir = wd
	}

	return &App{
		Config:      deps.Config,
		Fs:          deps.Fs,
		HTTPClient:  deps.HTTPClient,
		Confirm:     deps.Confirm,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
		workDir:     deps.WorkDir,
		live:        live,
		colorScheme: config.ColorSchemeAuto,
	}, nil
}

// loadConfig loads configuration honoring --config and --collections-dir.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath, Fs: a.Fs})
	if err != nil {
		return nil, err
	}
	a.colorScheme = cfg.UI.ColorScheme
	if a.flags.collectionsDir != "" {
		cfg.CollectionsDir = a.flags.collectionsDir
	}
	if a.flags.verbose {
		cfg.UI.Verbose = true
	}
	return cfg, nil
}

// newLogger builds the CLI logger: stderr, prefixed, Debug when verbose.
func (a *App) newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// session builds the store, remote client and installer from configuration.
func (a *App) session(ctx context.Context) (*session, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	base, err := cfg.ResolveCollectionsDir()
	if err != nil {
		return nil, err
	}

	logger := a.newLogger(cfg.UI.Verbose)
	st := store.New(a.Fs, base)
	client := remote.NewClient(
		remote.WithHTTPClient(a.HTTPClient),
		remote.WithFs(a.Fs),
		remote.WithTimeout(cfg.Remote.Timeout.Duration()),
		remote.WithChunkSize(cfg.Remote.ChunkSize),
		remote.WithUserAgent(config.AppName+"/"+Version),
		remote.WithLogger(logger),
	)
	locator := remote.NewLocator(remote.Templates{BaseURL: string(cfg.Remote.BaseURL)})

	opts := []installer.Option{installer.WithLogger(logger)}
	if cfg.UI.Progress {
		opts = append(opts, installer.WithReporter(tui.NewProgressReporter(a.stderr, a.live)))
	}

	return &session{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		client:    client,
		locator:   locator,
		installer: installer.New(st, client, locator, opts...),
	}, nil
}

func (s *session) lister() *catalog.Lister {
	return catalog.NewLister(s.client, s.locator)
}
