package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/render"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/sprintpulse/pkg/application"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/drift"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/messaging"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	progress, planning, digest bool

	sprint       string
	active, next bool

	progressSprint string
	progressActive bool
	planningSprint string
	planningActive bool
	planningNext   bool

	timeShift  int
	futureDays int
	publish    bool
}

var rf reportFlags

// selectors merges the shared selectors with the per-report ones. Per-report
// flags win.
func (f reportFlags) selectors() (progress, planning application.SprintSelector) {
	progress = application.SprintSelector{Name: f.sprint, Active: f.active, Next: f.next}
	planning = progress
	if f.progressSprint != "" || f.progressActive {
		progress = application.SprintSelector{Name: f.progressSprint, Active: f.progressActive}
	}
	if f.planningSprint != "" || f.planningActive || f.planningNext {
		planning = application.SprintSelector{Name: f.planningSprint, Active: f.planningActive, Next: f.planningNext}
	}
	return progress, planning
}

// timeShiftFrom honours --future-days only when --time-shift is absent.
func timeShiftFrom(cmd *cobra.Command, f reportFlags) int {
	var shift, future *int
	if cmd.Flags().Changed("time-shift") {
		shift = &f.timeShift
	}
	if cmd.Flags().Changed("future-days") {
		future = &f.futureDays
	}
	return drift.ResolveTimeShift(shift, future)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Progress of the active sprint and grooming of the next one",
	Long: `Report prints the progress report for the active sprint and the planning
report for the next sprint. Use --progress or --planning to print only one,
or --digest for a condensed view of both.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		services, board, err := loadBoard(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		opts := application.ProgressOptions{TimeShift: timeShiftFrom(cmd, rf)}

		if rf.digest {
			return runDigest(ctx, out, services, board, opts)
		}

		both := !rf.progress && !rf.planning
		progressSel, planningSel := rf.selectors()
		result := struct {
			Progress *application.ProgressReport `json:"progress,omitempty"`
			Planning *application.PlanningReport `json:"planning,omitempty"`
		}{}

		if both || rf.progress {
			sp, err := pickSprint(ctx, out, services, board.ID, progressSel, application.SprintSelector{Active: true})
			if err != nil {
				return err
			}
			if result.Progress, err = services.Reports.Progress(ctx, board, sp, opts); err != nil {
				return MapError(errors.Wrap(err, "progress report"))
			}
		}
		if both || rf.planning {
			sp, err := pickSprint(ctx, out, services, board.ID, planningSel, application.SprintSelector{Next: true})
			if err != nil {
				return err
			}
			if result.Planning, err = services.Reports.Planning(ctx, board, sp); err != nil {
				return MapError(errors.Wrap(err, "planning report"))
			}
		}

		if jsonOutput {
			return printJSON(out, result)
		}
		f := formatter(out)
		if result.Progress != nil {
			fmt.Fprintln(out, f.Progress(result.Progress))
		}
		if result.Planning != nil {
			fmt.Fprintln(out, f.Planning(result.Planning))
		}
		return nil
	},
}

// pickSprint resolves a selector. When the user gave no selector and the
// board simply has no such sprint, a note is printed and nil returned.
func pickSprint(ctx context.Context, out io.Writer, services *wiring.AppServices, board int, sel, fallback application.SprintSelector) (*sprint.Sprint, error) {
	sp, err := services.Sprints.Resolve(ctx, board, sel, fallback)
	if err == nil {
		return sp, nil
	}
	if !sel.IsZero() || !sprint.IsNotFound(err) {
		return nil, MapError(err)
	}
	if !jsonOutput {
		fmt.Fprintf(out, "Skipping: %v\n\n", err)
	}
	return nil, nil
}

func runDigest(ctx context.Context, out io.Writer, services *wiring.AppServices, board sprint.BoardConfig, opts application.ProgressOptions) error {
	d, err := services.Reports.Digest(ctx, board, opts)
	if err != nil {
		return MapError(errors.Wrap(err, "digest"))
	}

	if rf.publish {
		if err := services.Publisher.Publish(ctx, digestMessage(board, d)); err != nil {
			return NewCLIError("publishing the digest failed", "Check the messaging adapters in the config file", err)
		}
		logger.Info("digest published", "board", board.ID, "adapters", len(services.Publisher.Adapters()))
	}

	if jsonOutput {
		return printJSON(out, d)
	}
	fmt.Fprint(out, formatter(out).Digest(d))
	return nil
}

// digestMessage renders the digest without terminal styling for chat.
func digestMessage(board sprint.BoardConfig, d *application.Digest) *messaging.Message {
	msg := &messaging.Message{
		Title:     fmt.Sprintf("Sprint digest: %s", board.Name),
		Text:      render.Formatter{}.Digest(d),
		Board:     board.Name,
		Fields:    map[string]string{},
		Timestamp: d.GeneratedAt,
	}
	if p := d.Progress; p != nil {
		msg.Title = fmt.Sprintf("Sprint digest: %s", p.Sprint.Name)
		if p.Drift != nil {
			msg.Fields["Drift"] = strconv.FormatFloat(p.Drift.Drift, 'f', -1, 64)
		}
		msg.Fields["Remaining"] = strconv.FormatFloat(p.Remaining.TotalPoints, 'f', -1, 64)
	}
	if p := d.Planning; p != nil {
		msg.Fields["Next sprint risk"] = string(p.Risk.Level)
	}
	return msg
}

func init() {
	f := reportCmd.Flags()
	f.BoolVar(&rf.progress, "progress", false, "Only the progress report")
	f.BoolVar(&rf.planning, "planning", false, "Only the planning report")
	f.BoolVar(&rf.digest, "digest", false, "Condensed digest of the active and next sprint")

	f.StringVarP(&rf.sprint, "sprint", "s", "", "Sprint name for both reports")
	f.BoolVarP(&rf.active, "active", "a", false, "Use the active sprint for both reports")
	f.BoolVarP(&rf.next, "next", "n", false, "Use the next future sprint for both reports")
	f.StringVar(&rf.progressSprint, "ps", "", "Sprint name for the progress report")
	f.BoolVar(&rf.progressActive, "pa", false, "Active sprint for the progress report")
	f.StringVar(&rf.planningSprint, "ls", "", "Sprint name for the planning report")
	f.BoolVar(&rf.planningActive, "la", false, "Active sprint for the planning report")
	f.BoolVar(&rf.planningNext, "ln", false, "Next future sprint for the planning report")

	f.IntVar(&rf.timeShift, "time-shift", 0, "Move today by N business days (negative for the past)")
	f.IntVar(&rf.futureDays, "future-days", 0, "Move today forward by N business days")
	_ = f.MarkDeprecated("future-days", "use --time-shift instead")
	f.BoolVar(&rf.publish, "publish", false, "Send the digest through the configured messaging adapters")

	addOutputFlags(reportCmd)
	RootCmd.AddCommand(reportCmd)
}
