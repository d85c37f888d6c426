package extension

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/meltanolabs/evidence-ext/internal/config"
	"github.com/meltanolabs/evidence-ext/internal/invoker"
)

// stubScript records "<name> <args>" to $STUB_LOG and exits with the code
// held in $STUB_FAIL_<first arg>, defaulting to 0.
const stubScript = `#!/bin/sh
echo "%NAME% $*" >> "$STUB_LOG"
case "$1" in
  install) code="${STUB_FAIL_INSTALL:-0}" ;;
  run) code="${STUB_FAIL_RUN:-0}" ;;
  degit) code="${STUB_FAIL_DEGIT:-0}" ;;
  *) code="${STUB_FAIL_OTHER:-0}" ;;
esac
if [ "$code" != "0" ]; then
  echo "stub $1 failed" >&2
fi
exit "$code"
`

type harness struct {
	ext  *Evidence
	logs *bytes.Buffer
	log  string
	home string
}

// newHarness installs recording npm/npx stubs on PATH and returns a
// controller pointed at a fixed project directory.
func newHarness(t *testing.T) *harness {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub executables require a POSIX shell")
	}

	bin := t.TempDir()
	for _, name := range invoker.SupportedCommands {
		script := strings.ReplaceAll(stubScript, "%NAME%", name)
		if err := os.WriteFile(filepath.Join(bin, name), []byte(script), 0755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	logFile := filepath.Join(t.TempDir(), "calls.log")
	t.Setenv("STUB_LOG", logFile)

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	home := config.Home{Path: "/tmp/proj", Source: "EVIDENCE_HOME"}

	return &harness{
		ext:  New(home, invoker.NewRegistry(logger), logger),
		logs: logs,
		log:  logFile,
		home: home.Path,
	}
}

func (h *harness) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(h.log)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func assertExitCode(t *testing.T, err error, want int) {
	t.Helper()
	var exitErr *invoker.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *invoker.ExitError, got %v", err)
	}
	if exitErr.Code != want {
		t.Errorf("exit code = %d, want %d", exitErr.Code, want)
	}
}

func TestBuild_Sequence(t *testing.T) {
	h := newHarness(t)

	if err := h.ext.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		"npm install --prefix /tmp/proj",
		"npm run build --prefix /tmp/proj",
	}
	if got := h.calls(t); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %q, want %q", got, want)
	}
	if strings.Contains(h.logs.String(), "level=ERROR") {
		t.Errorf("unexpected error logged: %s", h.logs.String())
	}
}

func TestBuild_InstallFailureStopsBuild(t *testing.T) {
	h := newHarness(t)
	t.Setenv("STUB_FAIL_INSTALL", "2")

	err := h.ext.Build(context.Background())
	assertExitCode(t, err, 2)

	want := []string{"npm install --prefix /tmp/proj"}
	if got := h.calls(t); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %q, want %q", got, want)
	}

	logs := h.logs.String()
	if !strings.Contains(logs, `msg="npm install failed"`) || !strings.Contains(logs, "returncode=2") {
		t.Errorf("subprocess error not logged: %s", logs)
	}
	if !strings.Contains(logs, `msg="stub install failed"`) {
		t.Errorf("captured stderr not logged: %s", logs)
	}
}

func TestBuild_ScriptFailure(t *testing.T) {
	h := newHarness(t)
	t.Setenv("STUB_FAIL_RUN", "1")

	err := h.ext.Build(context.Background())
	assertExitCode(t, err, 1)

	if got := h.calls(t); len(got) != 2 {
		t.Errorf("expected install and run, got %q", got)
	}
	if !strings.Contains(h.logs.String(), `msg="npm run build failed"`) {
		t.Errorf("missing failure context: %s", h.logs.String())
	}
}

func TestDev_Sequence(t *testing.T) {
	h := newHarness(t)

	if err := h.ext.Dev(context.Background()); err != nil {
		t.Fatalf("Dev: %v", err)
	}

	want := []string{
		"npm install --prefix /tmp/proj",
		"npm run dev --prefix /tmp/proj",
	}
	if got := h.calls(t); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestDev_InstallFailureStopsDev(t *testing.T) {
	h := newHarness(t)
	t.Setenv("STUB_FAIL_INSTALL", "5")

	assertExitCode(t, h.ext.Dev(context.Background()), 5)
	if got := h.calls(t); len(got) != 1 {
		t.Errorf("dev script must not run after failed install, got %q", got)
	}
}

func TestInitialize(t *testing.T) {
	for _, force := range []bool{false, true} {
		t.Run(map[bool]string{false: "default", true: "force"}[force], func(t *testing.T) {
			h := newHarness(t)

			if err := h.ext.Initialize(context.Background(), force); err != nil {
				t.Fatalf("Initialize: %v", err)
			}

			want := []string{"npx degit evidence-dev/template /tmp/proj"}
			if got := h.calls(t); !reflect.DeepEqual(got, want) {
				t.Errorf("calls = %q, want %q", got, want)
			}
		})
	}
}

func TestInitialize_Failure(t *testing.T) {
	h := newHarness(t)
	t.Setenv("STUB_FAIL_DEGIT", "128")

	assertExitCode(t, h.ext.Initialize(context.Background(), false), 128)
	if !strings.Contains(h.logs.String(), `msg="npx degit failed"`) {
		t.Errorf("missing failure log: %s", h.logs.String())
	}
}

func TestInvoke_PassesArgs(t *testing.T) {
	h := newHarness(t)

	if err := h.ext.Invoke(context.Background(), "run", "run", "sources"); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	want := []string{"npm run sources"}
	if got := h.calls(t); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestInvoke_FailureCarriesCommandName(t *testing.T) {
	h := newHarness(t)
	t.Setenv("STUB_FAIL_OTHER", "7")

	err := h.ext.Invoke(context.Background(), "outdated", "outdated")
	assertExitCode(t, err, 7)
	if !strings.Contains(h.logs.String(), `msg="npm outdated failed"`) {
		t.Errorf("command name missing from failure log: %s", h.logs.String())
	}
}

func TestBuild_CountsPages(t *testing.T) {
	h := newHarness(t)

	home := t.TempDir()
	for _, page := range []string{"build/index.html", "build/sales/index.html", "build/_app/app.js"} {
		p := filepath.Join(home, page)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	h.ext.home.Path = home

	if err := h.ext.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.logs.String(), "pages=2") {
		t.Errorf("expected page count in log: %s", h.logs.String())
	}

	pages, err := h.ext.BuildPages()
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Errorf("BuildPages = %v", pages)
	}
}

func TestBuildPages_MissingOutput(t *testing.T) {
	ext := New(config.Home{Path: t.TempDir()}, invoker.NewRegistry(nil), nil)
	pages, err := ext.BuildPages()
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 0 {
		t.Errorf("expected no pages, got %v", pages)
	}
}
