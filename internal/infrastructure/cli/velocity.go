package cli

import (
	"fmt"

	"github.com/felixgeelhaar/sprintpulse/pkg/application"
	"github.com/spf13/cobra"
)

var velocitySprints int

var velocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Suggest a team velocity from recently closed sprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, board, err := loadBoard(cmd.Context())
		if err != nil {
			return err
		}
		vs, err := services.Velocity.Suggest(cmd.Context(), board, velocitySprints)
		if err != nil {
			return MapError(err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, vs)
		}
		fmt.Fprint(out, formatter(out).Velocity(application.BoardRef{ID: board.ID, Name: board.Name}, vs))
		return nil
	},
}

func init() {
	velocityCmd.Flags().IntVar(&velocitySprints, "sprints", application.DefaultVelocitySamples, "Number of closed sprints to learn from")
	addOutputFlags(velocityCmd)
	RootCmd.AddCommand(velocityCmd)
}
