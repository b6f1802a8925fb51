package cli

import (
	"fmt"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
	"github.com/spf13/cobra"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List configured boards and the boards visible in Jira",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		configured := make(map[int]bool, len(services.Config.Boards))
		for _, b := range services.Config.Boards {
			configured[b.ID] = true
		}

		remote, err := services.Tracker.Boards(cmd.Context())
		if err != nil {
			logger.Warn("listing Jira boards failed", "error", err)
			remote = nil
		}
		// Configured boards Jira did not return are still listed.
		seen := make(map[int]bool, len(remote))
		for _, b := range remote {
			seen[b.ID] = true
		}
		for _, b := range services.Config.Boards {
			if !seen[b.ID] {
				remote = append(remote, sprint.Board{ID: b.ID, Name: b.Name})
			}
		}

		if jsonOutput {
			return printJSON(out, remote)
		}
		if err != nil {
			fmt.Fprintf(out, "Warning: Jira boards unavailable: %v\n", err)
		}
		fmt.Fprint(out, formatter(out).Boards(remote, configured))
		return nil
	},
}

func init() {
	addOutputFlags(boardsCmd)
	RootCmd.AddCommand(boardsCmd)
}
