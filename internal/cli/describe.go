package cli

import (
	"github.com/meltanolabs/evidence-ext/internal/extension"
	"github.com/spf13/cobra"
)

var describeFormat string

func init() {
	describeCmd.Flags().StringVar(&describeFormat, "format", extension.FormatText, "Output format (text, json, yaml)")
	rootCmd.AddCommand(describeCmd)
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe the commands this extension provides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := extension.Render(controller.Describe(), describeFormat)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
