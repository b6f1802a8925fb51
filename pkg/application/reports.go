package application

import (
	"time"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/calendar"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/drift"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/metrics"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// Warning records a report section that fell back to empty data.
type Warning struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

// BoardRef identifies the board a report was built for.
type BoardRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProgressReport answers "are we on track?" for a running sprint.
type ProgressReport struct {
	Board              BoardRef                    `json:"board"`
	Sprint             sprint.Sprint               `json:"sprint"`
	Notes              string                      `json:"notes,omitempty"`
	TimeShift          int                         `json:"timeShift"`
	Calendar           calendar.Breakdown          `json:"calendar"`
	Drift              *drift.Result               `json:"drift"`
	Remaining          metrics.RemainingSummary    `json:"remaining"`
	Completed          metrics.CompletedSummary    `json:"completed"`
	FinishLine         metrics.FinishLineBreakdown `json:"finishLine"`
	Risk               metrics.RiskResult          `json:"risk"`
	Scope              *metrics.ScopeChanges       `json:"scopeChanges,omitempty"`
	StatusOrder        []string                    `json:"-"`
	FinishLineStatuses []string                    `json:"finishLineStatuses,omitempty"`
	Warnings           []Warning                   `json:"warnings,omitempty"`
}

// PlanningReport answers "are we ready?" for an upcoming sprint.
type PlanningReport struct {
	Board              BoardRef                `json:"board"`
	Sprint             sprint.Sprint           `json:"sprint"`
	Notes              string                  `json:"notes,omitempty"`
	Grooming           metrics.GroomingSummary `json:"grooming"`
	Risk               metrics.RiskResult      `json:"risk"`
	TeamVelocity       *float64                `json:"teamVelocity,omitempty"`
	StatusOrder        []string                `json:"-"`
	FinishLineStatuses []string                `json:"finishLineStatuses,omitempty"`
	Warnings           []Warning               `json:"warnings,omitempty"`
}

// CommitmentRatio compares pointed scope with team velocity; 0 without
// velocity.
func (p *PlanningReport) CommitmentRatio() float64 {
	if p.TeamVelocity == nil || *p.TeamVelocity <= 0 {
		return 0
	}
	return p.Grooming.PointedTotal() / *p.TeamVelocity
}

// Digest condenses the active and next sprint into a few lines. Either side
// is nil when the board has no such sprint.
type Digest struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Progress    *ProgressReport `json:"progress"`
	Planning    *PlanningReport `json:"planning"`
}
