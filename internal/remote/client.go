// SPDX-License-Identifier: MPL-2.0

package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/fpgawars/icm/internal/progress"
	"github.com/fpgawars/icm/pkg/collection"
)

const (
	// DefaultTimeout bounds every metadata request (manifests).
	DefaultTimeout = 10 * time.Second

	// DefaultChunkSize is the buffer size archives are streamed with.
	DefaultChunkSize = 1024

	// maxManifestBytes is the upper bound on a manifest body (1 MiB).
	maxManifestBytes = 1 << 20
)

var (
	// ErrUnexpectedStatus is the sentinel error wrapped by StatusError.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrManifestUnavailable is returned whenever a manifest cannot be
	// retrieved or understood. Callers treat it as "latest version unknown".
	ErrManifestUnavailable = errors.New("manifest unavailable")
)

type (
	// StatusError reports a non-200 response. It wraps ErrUnexpectedStatus.
	StatusError struct {
		URL  string
		Code int
	}

	// Client fetches manifests and archives over HTTP. Metadata requests are
	// bounded by the configured timeout; archive downloads are only bounded
	// by the caller's context once the response status has been accepted.
	Client struct {
		httpClient *http.Client
		fs         afero.Fs
		timeout    time.Duration
		chunkSize  int
		userAgent  string
		logger     *log.Logger
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

// Error formats the status failure with the offending URL.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", redactURL(e.URL), e.Code, http.StatusText(e.Code))
}

// Unwrap returns ErrUnexpectedStatus so callers can use errors.Is for programmatic detection.
func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithFs sets the filesystem downloads are written to.
func WithFs(fs afero.Fs) ClientOption {
	return func(cl *Client) {
		cl.fs = fs
	}
}

// WithTimeout sets the bound applied to manifest requests.
func WithTimeout(d time.Duration) ClientOption {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithChunkSize sets the streaming buffer size for downloads.
func WithChunkSize(n int) ClientOption {
	return func(cl *Client) {
		if n > 0 {
			cl.chunkSize = n
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) ClientOption {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a Client with sensible defaults.
// Defaults: http.DefaultClient, the OS filesystem, a 10s metadata timeout,
// 1024-byte chunks, userAgent="icm/dev" and a discarding logger.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		fs:         afero.NewOsFs(),
		timeout:    DefaultTimeout,
		chunkSize:  DefaultChunkSize,
		userAgent:  "icm/dev",
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchManifest retrieves and decodes the manifest at manifestURL. Every
// failure (transport, status, size, decoding, missing fields) is reported as
// an error wrapping ErrManifestUnavailable.
func (c *Client) FetchManifest(ctx context.Context, manifestURL string) (*collection.Manifest, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.doRequest(ctx, manifestURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w", ErrManifestUnavailable, &StatusError{URL: manifestURL, Code: resp.StatusCode})
	}

	m, err := collection.DecodeManifest(io.LimitReader(resp.Body, maxManifestBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestUnavailable, redactURL(manifestURL), err)
	}

	c.logger.Debug("fetched manifest", "url", manifestURL, "name", m.Name, "version", m.Version)
	return m, nil
}

// Download streams the body at archiveURL into dest, reporting cumulative
// bytes to sink. The response status is checked before dest is created, so a
// failed request leaves no file behind. total is progress.Unknown when the
// server sends no Content-Length. It returns the number of bytes written.
func (c *Client) Download(ctx context.Context, archiveURL, dest string, sink progress.Func) (_ int64, err error) {
	resp, err := c.doRequest(ctx, archiveURL)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{URL: archiveURL, Code: resp.StatusCode}
	}

	total := resp.ContentLength
	if total < 0 {
		total = progress.Unknown
	}

	f, err := c.fs.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", dest, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", dest, closeErr)
		}
	}()

	c.logger.Debug("downloading archive", "url", archiveURL, "dest", dest, "bytes", total)

	written, err := copyChunks(f, resp.Body, c.chunkSize, total, sink)
	if err != nil {
		return written, fmt.Errorf("downloading %s: %w", redactURL(archiveURL), err)
	}
	return written, nil
}

// copyChunks copies src to dst one chunk at a time so progress can be
// reported without holding more than one buffer in memory.
func copyChunks(dst io.Writer, src io.Reader, chunkSize int, total int64, sink progress.Func) (int64, error) {
	buf := make([]byte, chunkSize)
	var written int64
	sink.Report(0, total)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return written, fmt.Errorf("writing chunk: %w", err)
			}
			written += int64(n)
			sink.Report(written, total)
		}
		if errors.Is(readErr, io.EOF) {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("reading body: %w", readErr)
		}
	}
}

// doRequest creates and executes an anonymous GET request.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", redactURL(reqURL), err)
	}
	return resp, nil
}

// redactURL strips query parameters and fragments from a URL for safe inclusion
// in error messages.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid-url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
