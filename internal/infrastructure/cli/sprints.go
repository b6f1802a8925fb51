package cli

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
	"github.com/spf13/cobra"
)

var sprintState string

var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "List the sprints of a board",
	RunE: func(cmd *cobra.Command, args []string) error {
		var states []sprint.State
		if sprintState != "" {
			st := sprint.State(strings.ToLower(sprintState))
			if st != sprint.StateActive && st != sprint.StateFuture && st != sprint.StateClosed {
				return NewCLIError(fmt.Sprintf("unknown sprint state %q", sprintState), "Use active, future or closed", nil)
			}
			states = append(states, st)
		}

		services, board, err := loadBoard(cmd.Context())
		if err != nil {
			return err
		}
		sprints, err := services.Sprints.List(cmd.Context(), board.ID, states...)
		if err != nil {
			return MapError(err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, sprints)
		}
		fmt.Fprintf(out, "Sprints on board %d (%s)\n", board.ID, board.Name)
		fmt.Fprint(out, formatter(out).Sprints(sprints))
		return nil
	},
}

func init() {
	sprintsCmd.Flags().StringVarP(&sprintState, "state", "s", "", "Only sprints in this state (active, future, closed)")
	addOutputFlags(sprintsCmd)
	RootCmd.AddCommand(sprintsCmd)
}
