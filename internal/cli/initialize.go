package cli

import (
	"github.com/spf13/cobra"
)

var initializeForce bool

func init() {
	initializeCmd.Flags().BoolVar(&initializeForce, "force", false, "Accepted for compatibility; has no effect")
	rootCmd.AddCommand(initializeCmd)
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Scaffold the Evidence project from the starter template",
	Long: `Populate the project directory from the Evidence starter template using
npx degit. degit refuses to write into a non-empty directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return controller.Initialize(cmd.Context(), initializeForce)
	},
}
