// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/fpgawars/icm/internal/archive"
	"github.com/fpgawars/icm/internal/catalog"
	"github.com/fpgawars/icm/internal/progress"
	"github.com/fpgawars/icm/internal/remote"
	"github.com/fpgawars/icm/internal/store"
	"github.com/fpgawars/icm/pkg/collection"
)

const (
	// OutcomeInstalled means the build was downloaded and extracted.
	OutcomeInstalled Outcome = iota + 1
	// OutcomeSkipped means the build was already in the store.
	OutcomeSkipped
)

type (
	// Outcome is the terminal state of a successful install.
	Outcome int

	// Fetcher is the remote side of an install. *remote.Client satisfies it.
	Fetcher interface {
		FetchManifest(ctx context.Context, url string) (*collection.Manifest, error)
		Download(ctx context.Context, url, dest string, sink progress.Func) (int64, error)
	}

	// Result describes one successful install request.
	Result struct {
		Outcome  Outcome
		Location remote.Location
		// Path is the store directory of the entry.
		Path string
		// VersionIgnored is set when --dev overrode an explicit version.
		VersionIgnored bool
		// Bytes is the archive size; zero when skipped.
		Bytes int64
		// Files is the number of archive entries extracted; zero when skipped.
		Files int
	}

	// Installer installs collections into a store, strictly one at a time.
	Installer struct {
		store    *store.Store
		fetcher  Fetcher
		locator  *remote.Locator
		logger   *log.Logger
		reporter Reporter
		stable   []collection.CollectionName
	}

	// Option configures an Installer during construction.
	Option func(*Installer)
)

// String returns a human-readable outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeInstalled:
		return "installed"
	case OutcomeSkipped:
		return "already installed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// WithLogger sets the logger install steps are reported to.
func WithLogger(l *log.Logger) Option {
	return func(in *Installer) {
		if l != nil {
			in.logger = l
		}
	}
}

// WithReporter sets the progress reporter for downloads and extractions.
func WithReporter(r Reporter) Option {
	return func(in *Installer) {
		if r != nil {
			in.reporter = r
		}
	}
}

// WithStable overrides the collections installed by InstallAllStable.
func WithStable(names []collection.CollectionName) Option {
	return func(in *Installer) {
		in.stable = names
	}
}

// New creates an Installer. Without options it logs nowhere, reports no
// progress and installs the stable catalog for InstallAllStable.
func New(st *store.Store, fetcher Fetcher, locator *remote.Locator, opts ...Option) *Installer {
	in := &Installer{
		store:    st,
		fetcher:  fetcher,
		locator:  locator,
		logger:   log.New(io.Discard),
		reporter: nopReporter{},
		stable:   catalog.Stable(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Install installs the collection named by raw ("iceK" or "iceK@0.1.4").
//
// With dev set the main branch build is installed and any version in raw is
// ignored. With a version, that release is installed. Otherwise the latest
// release announced by the collection manifest is installed. A build already
// in the store is skipped without touching the network for the archive.
func (in *Installer) Install(ctx context.Context, raw string, dev bool) (Result, error) {
	ref, err := collection.Parse(raw, collection.SeparatorInstall)
	if err != nil {
		return Result{}, err
	}

	var res Result
	switch {
	case dev:
		if ref.HasVersion() {
			in.logger.Warn("installing development build instead of requested version", "collection", ref.Name, "version", ref.Version)
			res.VersionIgnored = true
		}
		ref = ref.WithVersion("")
	case !ref.HasVersion():
		latest, err := in.latestVersion(ctx, ref.Name)
		if err != nil {
			return Result{}, err
		}
		ref = ref.WithVersion(latest)
	}

	loc := in.locator.Resolve(ref)
	res.Location = loc
	res.Path = in.store.Path(loc.EntryName)

	if in.store.Exists(loc.EntryName) {
		in.logger.Info("collection already installed", "entry", loc.EntryName)
		res.Outcome = OutcomeSkipped
		return res, nil
	}

	if err := in.store.Ensure(); err != nil {
		return Result{}, err
	}

	in.logger.Info("installing collection", "entry", loc.EntryName, "url", loc.RemoteURL)

	archivePath := in.store.ArchivePath(loc.ArchiveName)
	res.Bytes, err = in.download(ctx, loc, archivePath)
	if err != nil {
		return Result{}, err
	}

	res.Files, err = in.extract(loc, archivePath)
	if err != nil {
		return Result{}, err
	}

	if err := in.store.Fs().Remove(archivePath); err != nil {
		in.logger.Warn("could not remove downloaded archive", "path", archivePath, "err", err)
	}

	in.logger.Info("collection installed", "entry", loc.EntryName, "bytes", res.Bytes, "files", res.Files)
	res.Outcome = OutcomeInstalled
	return res, nil
}

// InstallMany installs each reference in order. A failing item is recorded
// and the batch moves on.
func (in *Installer) InstallMany(ctx context.Context, raws []string, dev bool) BatchResult {
	var batch BatchResult
	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			batch.Items = append(batch.Items, Item{Raw: raw, Err: err})
			continue
		}
		res, err := in.Install(ctx, raw, dev)
		if err != nil {
			in.logger.Error("install failed", "collection", raw, "err", err)
		}
		batch.Items = append(batch.Items, Item{Raw: raw, Result: res, Err: err})
	}
	return batch
}

// InstallAllStable installs every stable catalog collection.
func (in *Installer) InstallAllStable(ctx context.Context, dev bool) BatchResult {
	raws := make([]string, 0, len(in.stable))
	for _, name := range in.stable {
		raws = append(raws, name.String())
	}
	return in.InstallMany(ctx, raws, dev)
}

// Remove resolves raw against the store and deletes at most one entry.
func (in *Installer) Remove(raw string, opts store.RemoveOptions) (store.RemoveResult, error) {
	res, err := in.store.Remove(raw, opts)
	if err != nil {
		return res, err
	}
	switch res.Outcome {
	case store.RemoveDeleted:
		in.logger.Info("collection removed", "entry", res.Entry)
	case store.RemoveAborted:
		in.logger.Info("removal aborted", "entry", res.Entry)
	case store.RemoveNotFound:
		in.logger.Debug("no matching collection", "collection", raw, "searched", res.Searched)
	}
	return res, nil
}

func (in *Installer) latestVersion(ctx context.Context, name collection.CollectionName) (collection.Version, error) {
	url := in.locator.ManifestURL(name)
	m, err := in.fetcher.FetchManifest(ctx, url)
	if err != nil {
		return "", &ManifestError{Name: name, URL: url, Err: err}
	}
	v, err := m.LatestVersion()
	if err != nil {
		return "", &ManifestError{Name: name, URL: url, Err: err}
	}
	in.logger.Debug("resolved latest version", "collection", name, "version", v)
	return v, nil
}

// download streams the archive; a partial file is removed on failure.
func (in *Installer) download(ctx context.Context, loc remote.Location, archivePath string) (int64, error) {
	label := loc.EntryName
	n, err := in.fetcher.Download(ctx, loc.RemoteURL, archivePath, in.reporter.Begin(PhaseDownload, label))
	in.reporter.End(PhaseDownload, label, err)
	if err != nil {
		if rmErr := in.store.Fs().Remove(archivePath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			in.logger.Warn("could not remove partial download", "path", archivePath, "err", rmErr)
		}
		return 0, fmt.Errorf("downloading %s: %w", loc.EntryName, err)
	}
	return n, nil
}

// extract unpacks into a staging directory and publishes it only when
// every entry was written.
func (in *Installer) extract(loc remote.Location, archivePath string) (int, error) {
	label := loc.EntryName
	staging, err := in.store.Stage(loc.EntryName)
	if err != nil {
		return 0, err
	}

	n, err := archive.Extract(in.store.Fs(), archivePath, staging, in.reporter.Begin(PhaseExtract, label))
	if err == nil {
		err = in.store.Commit(loc.EntryName, staging)
	}
	in.reporter.End(PhaseExtract, label, err)
	if err != nil {
		if discardErr := in.store.Discard(staging); discardErr != nil {
			in.logger.Warn("could not discard staging directory", "path", staging, "err", discardErr)
		}
		return 0, &ExtractError{Archive: archivePath, Err: err}
	}
	return n, nil
}
