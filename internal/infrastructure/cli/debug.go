package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Check the config, the Jira connection and the story points field",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, board, err := loadBoard(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !jsonOutput {
			fmt.Fprintf(out, "Config: %s\n", services.Config.Path())
			fmt.Fprintf(out, "Jira: %s\n\n", services.Config.BaseURL)
		}

		d, err := services.Diagnostics.Diagnose(cmd.Context(), board)
		if err != nil {
			return MapError(err)
		}
		if jsonOutput {
			return printJSON(out, d)
		}
		fmt.Fprint(out, formatter(out).Diagnosis(d))
		return nil
	},
}

func init() {
	addOutputFlags(debugCmd)
	RootCmd.AddCommand(debugCmd)
}
