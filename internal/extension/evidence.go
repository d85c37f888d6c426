package extension

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meltanolabs/evidence-ext/internal/branding"
	"github.com/meltanolabs/evidence-ext/internal/config"
	"github.com/meltanolabs/evidence-ext/internal/invoker"
)

// Evidence is the extension controller for one Evidence project directory.
// It is not safe for concurrent use; Meltano runs one command per process.
type Evidence struct {
	home     config.Home
	invokers *invoker.Registry
	logger   *slog.Logger
}

// New returns a controller for home. Commands are issued through invokers.
func New(home config.Home, invokers *invoker.Registry, logger *slog.Logger) *Evidence {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evidence{home: home, invokers: invokers, logger: logger}
}

// Home returns the project directory the controller operates on.
func (e *Evidence) Home() config.Home {
	return e.home
}

// Initialize scaffolds the project directory from the Evidence template.
// force is accepted for parity with other Meltano extensions and is ignored;
// degit itself refuses to write into a non-empty directory.
func (e *Evidence) Initialize(ctx context.Context, force bool) error {
	if force {
		e.logger.Debug("initialize --force has no effect", "home", e.home.Path)
	}

	npx, err := e.invokers.Get(invoker.CommandNPX)
	if err != nil {
		return err
	}

	if _, err := npx.Run(ctx, "degit", branding.TemplateRepo(), e.home.Path); err != nil {
		invoker.LogSubprocessError(e.logger, "npx degit", err, "npx degit failed")
		return fmt.Errorf("initializing %s: %w", e.home.Path, err)
	}

	e.logger.Info("project initialized", "home", e.home.Path, "template", branding.TemplateRepo())
	return nil
}

// Invoke passes args to npm unchanged. command names the invocation in
// error reports and may be empty.
func (e *Evidence) Invoke(ctx context.Context, command string, args ...string) error {
	npm, err := e.invokers.Get(invoker.CommandNPM)
	if err != nil {
		return err
	}

	label := invoker.CommandNPM
	if command != "" {
		label += " " + command
	}

	if _, err := npm.Run(ctx, args...); err != nil {
		invoker.LogSubprocessError(e.logger, label, err, "npm invocation failed")
		return fmt.Errorf("invoking %s: %w", label, err)
	}
	return nil
}

// Build installs dependencies and runs the project's build script.
func (e *Evidence) Build(ctx context.Context) error {
	if err := e.installAndRun(ctx, "build"); err != nil {
		return err
	}

	pages, err := e.BuildPages()
	if err != nil {
		e.logger.Warn("could not list build output", "error", err)
		return nil
	}
	e.logger.Info("build complete", "home", e.home.Path, "pages", len(pages))
	return nil
}

// Dev installs dependencies and starts the development server. It blocks
// until the server exits.
func (e *Evidence) Dev(ctx context.Context) error {
	return e.installAndRun(ctx, "dev")
}

// installAndRun runs `npm install` then `npm run <script>`, both scoped to
// the project with --prefix. The script never runs if install fails.
func (e *Evidence) installAndRun(ctx context.Context, script string) error {
	npm, err := e.invokers.Get(invoker.CommandNPM)
	if err != nil {
		return err
	}

	steps := []struct {
		label string
		args  []string
	}{
		{"npm install", []string{"install", "--prefix", e.home.Path}},
		{"npm run " + script, []string{"run", script, "--prefix", e.home.Path}},
	}

	for _, step := range steps {
		if _, err := npm.Run(ctx, step.args...); err != nil {
			invoker.LogSubprocessError(e.logger, step.label, err, step.label+" failed")
			return fmt.Errorf("%s: %w", step.label, err)
		}
	}
	return nil
}

// Describe returns the extension's describe document.
func (e *Evidence) Describe() Description {
	return Describe()
}
