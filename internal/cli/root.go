package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/meltanolabs/evidence-ext/internal/branding"
	"github.com/meltanolabs/evidence-ext/internal/config"
	"github.com/meltanolabs/evidence-ext/internal/extension"
	"github.com/meltanolabs/evidence-ext/internal/invoker"
	"github.com/meltanolabs/evidence-ext/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// controller is set by the root command before any sub-command runs.
var controller *extension.Evidence

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` extension for Meltano. It scaffolds an Evidence project, installs its
dependencies, and runs the build or dev server through npm. The project
directory is read from ` + config.HomeSources[0] + `.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd.ErrOrStderr(), config.Load(cmd.Flags()))

		// version and help never touch the project.
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		ext, err := newController(logger, os.LookupEnv, os.Environ())
		if err != nil {
			return err
		}
		controller = ext
		return nil
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	config.RegisterFlags(rootCmd.PersistentFlags())
}

func newLogger(w io.Writer, s *config.Settings) *slog.Logger {
	return logging.New(w, logging.Options{
		Level:      s.LogLevel,
		JSON:       s.LogJSON,
		Timestamps: s.LogTimestamps,
	})
}

// newController resolves the project directory and builds the controller.
// A missing directory is fatal: the environment is dumped at debug level to
// help diagnose how Meltano launched the process.
func newController(logger *slog.Logger, lookup config.LookupFunc, environ []string) (*extension.Evidence, error) {
	home, err := config.ResolveHome(lookup)
	if err != nil {
		logger.Debug("env dump", "env", config.EnvDump(environ))
		logger.Error(err.Error())
		return nil, err
	}
	logger.Debug("resolved project directory", "home", home.Path, "source", home.Source)
	return extension.New(home, invoker.NewRegistry(logger), logger), nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && !alreadyReported(err) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// ExitCode maps an error returned by Execute or PassThrough to a process
// exit status. A failed child process propagates its own code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *invoker.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

// alreadyReported reports whether err was logged where it occurred.
func alreadyReported(err error) bool {
	var exitErr *invoker.ExitError
	return errors.As(err, &exitErr) || errors.Is(err, config.ErrHomeNotSet)
}
