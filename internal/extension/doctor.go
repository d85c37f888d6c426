package extension

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/meltanolabs/evidence-ext/internal/branding"
	"github.com/meltanolabs/evidence-ext/internal/invoker"
)

// ToolCheck is the outcome of probing one executable.
type ToolCheck struct {
	Name       string
	Version    string
	Constraint string
	OK         bool
	Err        error
}

// CheckTools runs `<tool> --version` for every supported executable and
// checks the result against the minimum npm release. npx ships with npm, so
// both carry the same constraint.
func (e *Evidence) CheckTools(ctx context.Context) []ToolCheck {
	constraintStr := ">= " + branding.MinNPMVersion()
	constraint, constraintErr := semver.NewConstraint(constraintStr)

	checks := make([]ToolCheck, 0, len(invoker.SupportedCommands))
	for _, name := range invoker.SupportedCommands {
		check := ToolCheck{Name: name, Constraint: constraintStr}
		if constraintErr != nil {
			check.Err = fmt.Errorf("parsing constraint %q: %w", constraintStr, constraintErr)
			checks = append(checks, check)
			continue
		}

		version, err := e.toolVersion(ctx, name)
		if err != nil {
			check.Err = err
			checks = append(checks, check)
			continue
		}

		check.Version = version.String()
		check.OK = constraint.Check(version)
		checks = append(checks, check)
	}
	return checks
}

func (e *Evidence) toolVersion(ctx context.Context, name string) (*semver.Version, error) {
	inv, err := e.invokers.Get(name)
	if err != nil {
		return nil, err
	}
	out, err := inv.Output(ctx, "--version")
	if err != nil {
		return nil, fmt.Errorf("running %s --version: %w", name, err)
	}
	return parseSemver(firstLine(out.Stdout))
}

// CheckProject reports whether the project directory exists and holds a
// package.json, i.e. whether initialize has run.
func (e *Evidence) CheckProject() error {
	info, err := os.Stat(e.home.Path)
	if err != nil {
		return fmt.Errorf("project directory %s: %w", e.home.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project directory %s is not a directory", e.home.Path)
	}
	pkg := filepath.Join(e.home.Path, "package.json")
	if _, err := os.Stat(pkg); err != nil {
		return fmt.Errorf("%s not found (run `%s initialize` first): %w", pkg, branding.CLIName(), err)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return v, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
