package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(invokeCmd)
}

var invokeCmd = &cobra.Command{
	Use:   "invoke <command> [args...]",
	Short: "Pass a command through to npm",
	Long: `Run npm with the given arguments. The first argument names the command in
error reports; every argument, including the first, is passed to npm.

Flags after "invoke" are not interpreted and reach npm unchanged.`,
	Args:               cobra.MinimumNArgs(1),
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return controller.Invoke(cmd.Context(), args[0], args...)
	},
}
