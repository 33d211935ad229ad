// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/fang"
	"github.com/spf13/afero"

	"github.com/fpgawars/icm/internal/issue"
	"github.com/fpgawars/icm/internal/store"
	"github.com/fpgawars/icm/internal/testutil"
)

const (
	testConfigPath = "/cfg/config.cue"
	testStore      = "/store"
	testWorkDir    = "/work"
)

// hub serves manifests and archives under the hosting service's URL layout.
type hub struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if body, ok := h.files[r.URL.Path]; ok {
		_, _ = w.Write(body)
		return
	}
	http.NotFound(w, r)
}

func (h *hub) release(t *testing.T, name, version string) {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.files["/"+name+"/raw/main/package.json"] = []byte(`{"name":"` + name + `","version":"` + version + `","description":"` + name + ` blocks"}`)
	h.files["/"+name+"/archive/refs/tags/v"+version+".zip"] = testutil.CollectionArchive(t, name+"-"+version, map[string]string{
		"package.json":          `{}`,
		"blocks/const/bit1.ice": `{}`,
	})
}

// testEnv is one isolated CLI environment: an in-memory filesystem, a fake
// hub and captured output.
type testEnv struct {
	fs      afero.Fs
	hub     *hub
	srv     *httptest.Server
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	answers []bool
	asked   []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{fs: afero.NewMemMapFs(), hub: &hub{files: map[string][]byte{}}}
	env.srv = httptest.NewServer(env.hub)
	t.Cleanup(env.srv.Close)

	cfg := "remote: base_url: \"" + env.srv.URL + "\"\nui: progress: false\n"
	if err := afero.WriteFile(env.fs, testConfigPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if err := env.fs.MkdirAll(testWorkDir, 0o755); err != nil {
		t.Fatalf("creating work dir: %v", err)
	}
	return env
}

func (e *testEnv) confirm(prompt string) (bool, error) {
	e.asked = append(e.asked, prompt)
	if len(e.answers) == 0 {
		return false, nil
	}
	answer := e.answers[0]
	e.answers = e.answers[1:]
	return answer, nil
}

// run executes one icm invocation against the environment's config and store.
func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	return e.exec(t, append([]string{"--config", testConfigPath, "--collections-dir", testStore}, args...)...)
}

func (e *testEnv) exec(t *testing.T, args ...string) error {
	t.Helper()

	e.stdout.Reset()
	e.stderr.Reset()

	app, err := NewApp(Dependencies{
		Fs:         e.fs,
		HTTPClient: e.srv.Client(),
		Confirm:    store.ConfirmFunc(e.confirm),
		Stdout:     &e.stdout,
		Stderr:     &e.stderr,
		WorkDir:    testWorkDir,
	})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}

	root := NewRootCommand(app)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func (e *testEnv) mkdirs(t *testing.T, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := e.fs.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("creating %s: %v", d, err)
		}
	}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error %v is not an ExitError", err)
	}
	return exitErr.Code
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	t.Parallel()

	app, err := NewApp(Dependencies{Fs: afero.NewMemMapFs(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, WorkDir: testWorkDir})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	root := NewRootCommand(app)

	for _, name := range []string{"install", "rm", "remove", "ls", "lsgit", "create", "validate", "update", "info", "config"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommand_UnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	err := env.run(t, "ls", "--no-such-flag")
	if code := exitCode(t, err); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

func TestErrorHandler_SkipsReportedFailures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	errorHandler(&buf, fang.Styles{}, &ExitError{Code: ExitFailure})
	if buf.Len() != 0 {
		t.Errorf("reported failure printed again: %q", buf.String())
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("boom")
	if got := formatErrorForDisplay(plain, false); got != "boom" {
		t.Errorf("plain error = %q, want %q", got, "boom")
	}

	ae := issue.NewErrorContext().
		WithOperation("remove collection").
		WithResource("iceK").
		WithSuggestion("Run icm ls").
		Wrap(plain).
		Build()
	got := formatErrorForDisplay(ae, false)
	if !strings.Contains(got, "remove collection") || !strings.Contains(got, "Run icm ls") {
		t.Errorf("actionable error = %q", got)
	}
}

func TestFail_VerboseRendersIssuePage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	err := env.run(t, "--verbose", "validate")
	if code := exitCode(t, err); code != ExitFailure {
		t.Fatalf("exit code = %d, want %d", code, ExitFailure)
	}
	if !strings.Contains(env.stderr.String(), "Not a valid collection") {
		t.Errorf("stderr lacks the issue page:\n%s", env.stderr.String())
	}

	if err := env.run(t, "validate"); err == nil {
		t.Fatal("validate succeeded on an empty folder")
	}
	if strings.Contains(env.stderr.String(), "Not a valid collection") {
		t.Error("issue page rendered without --verbose")
	}
}

func TestGetVersionString(t *testing.T) {
	// Mutates package-level build metadata.
	oldVersion, oldCommit, oldDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = oldVersion, oldCommit, oldDate })

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("dev version = %q", got)
	}

	Version, Commit, BuildDate = "1.2.0", "abc123", "2026-01-02"
	if got := getVersionString(); got != "1.2.0 (commit: abc123, built: 2026-01-02)" {
		t.Errorf("release version = %q", got)
	}
}
