// Command evidence_invoker passes its arguments straight to npm. Meltano runs
// it for `meltano invoke evidence <args>`.
package main

import (
	"os"

	"github.com/meltanolabs/evidence-ext/internal/cli"
)

func main() {
	if err := cli.PassThrough(os.Args[1:]); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
