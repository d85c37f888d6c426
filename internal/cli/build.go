package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(devCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Install dependencies and build the static site",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return controller.Build(cmd.Context())
	},
}

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Install dependencies and start the development server",
	Long:  `Install dependencies and run the Evidence development server. Blocks until the server exits.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return controller.Dev(cmd.Context())
	},
}
