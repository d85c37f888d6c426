package cli

import (
	"context"
	"os"

	"github.com/meltanolabs/evidence-ext/internal/branding"
	"github.com/meltanolabs/evidence-ext/internal/config"
)

// PassThrough is the evidence_invoker entry point: every argument is handed
// to npm unchanged. Logging settings come from the environment only, since
// all flags belong to npm.
func PassThrough(args []string) error {
	log := newLogger(os.Stderr, config.Load(nil))

	ext, err := newController(log, os.LookupEnv, os.Environ())
	if err != nil {
		return err
	}

	log.Debug("pass through invoker called", "invoker", branding.InvokerName(), "command_args", args)
	return ext.Invoke(context.Background(), "", args...)
}
