//go:build integration

package integration_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	BinDir     string // compiled extension binaries
	StubDir    string // stub npm/npx, first on PATH
	ProjectDir string // EVIDENCE_HOME
	CallLog    string // every stub invocation, one line each
}

// stubScript records "<name> <args>" and fails the step named by
// $STUB_FAIL_STEP with $STUB_FAIL_CODE. degit creates package.json the way
// the real template would.
const stubScript = `#!/bin/sh
echo "%s $*" >> "$STUB_LOG"
if [ "$1" = "$STUB_FAIL_STEP" ]; then
  echo "stub $1 failed" >&2
  exit "$STUB_FAIL_CODE"
fi
if [ "$1" = "degit" ]; then
  mkdir -p "$3" && echo '{}' > "$3/package.json"
fi
if [ "$1" = "--version" ]; then
  echo "10.2.4"
fi
if [ "$1" = "run" ] && [ "$2" = "build" ]; then
  mkdir -p "$4/build/sales" && touch "$4/build/index.html" "$4/build/sales/index.html"
fi
exit 0
`

// setupTestEnv compiles both binaries, installs stub npm/npx, and points
// EVIDENCE_HOME at a fresh directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub executables require a POSIX shell")
	}

	env := &testEnv{
		BinDir:     t.TempDir(),
		StubDir:    t.TempDir(),
		ProjectDir: filepath.Join(t.TempDir(), "site"),
	}
	env.CallLog = filepath.Join(env.StubDir, "calls.log")

	buildBinary(t, env.BinDir, "evidence_extension", ".")
	buildBinary(t, env.BinDir, "evidence_invoker", "./cmd/evidence_invoker")

	for _, name := range []string{"npm", "npx"} {
		script := strings.Replace(stubScript, "%s", name, 1)
		writeFile(t, filepath.Join(env.StubDir, name), script)
		if err := os.Chmod(filepath.Join(env.StubDir, name), 0755); err != nil {
			t.Fatal(err)
		}
	}

	t.Setenv("PATH", env.StubDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("STUB_LOG", env.CallLog)
	t.Setenv("STUB_FAIL_STEP", "")
	t.Setenv("STUB_FAIL_CODE", "0")
	t.Setenv("EVIDENCE_HOME", env.ProjectDir)
	t.Setenv("evidence_extension_EVIDENCE_HOME", "")

	return env
}

// buildBinary compiles pkg (relative to the module root) into dir/name.
func buildBinary(t *testing.T, dir, name, pkg string) {
	t.Helper()

	cmd := exec.Command("go", "build", "-o", filepath.Join(dir, name), pkg)
	cmd.Dir = moduleRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("building %s: %v\n%s", name, err, out)
	}
}

func moduleRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return filepath.Join(wd, "..", "..")
}

// runBinary runs a compiled binary and returns its combined output and exit code.
func runBinary(t *testing.T, env *testEnv, name string, args ...string) (string, int) {
	t.Helper()

	cmd := exec.Command(filepath.Join(env.BinDir, name), args...)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return string(out), 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("running %s: %v", name, err)
	}
	return string(out), exitErr.ExitCode()
}

func readCalls(t *testing.T, env *testEnv) []string {
	t.Helper()
	data, err := os.ReadFile(env.CallLog)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertCalls(t *testing.T, env *testEnv, want ...string) {
	t.Helper()
	got := readCalls(t, env)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("calls = %q, want %q", got, want)
	}
}
