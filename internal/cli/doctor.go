package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check npm, npx and the project directory",
	Long:  `Run diagnostic checks on the Node.js tool chain and the Evidence project directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		problems := 0

		fmt.Fprintln(w, "Tool check:")
		for _, c := range controller.CheckTools(cmd.Context()) {
			switch {
			case c.Err != nil:
				problems++
				fmt.Fprintf(w, "  [FAIL] %s: %v\n", c.Name, c.Err)
			case !c.OK:
				problems++
				fmt.Fprintf(w, "  [FAIL] %s %s does not satisfy %s\n", c.Name, c.Version, c.Constraint)
			default:
				fmt.Fprintf(w, "  [ OK ] %s %s\n", c.Name, c.Version)
			}
		}

		home := controller.Home()
		fmt.Fprintln(w, "Project check:")
		if err := controller.CheckProject(); err != nil {
			problems++
			fmt.Fprintf(w, "  [FAIL] %v\n", err)
		} else {
			fmt.Fprintf(w, "  [ OK ] %s (from %s)\n", home.Path, home.Source)
		}

		if problems > 0 {
			return fmt.Errorf("doctor found %d problem(s)", problems)
		}
		return nil
	},
}
