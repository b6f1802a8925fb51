// Package drift compares the work a sprint should have completed by now with
// the work it actually completed.
package drift

// Severity grades the magnitude of a drift score.
type Severity string

const (
	SeverityOnTrack  Severity = "on_track" // |drift| <= 5
	SeverityWarning  Severity = "warning"  // |drift| <= 15
	SeverityCritical Severity = "critical"
)

// LoadClass compares committed scope with team velocity.
type LoadClass string

const (
	LoadLight  LoadClass = "light"
	LoadNormal LoadClass = "normal"
	LoadHeavy  LoadClass = "heavy"
)

// SprintLoad describes how the initial commitment relates to team velocity.
type SprintLoad struct {
	Class                 LoadClass `json:"class"`
	LoadPercentage        int       `json:"loadPercentage"`
	ExpectedCompletionDay float64   `json:"expectedCompletionDay,omitempty"` // light only
	OvercommitPoints      float64   `json:"overcommitPoints,omitempty"`      // heavy only
}

// Input carries everything the drift calculation needs. Point values come from
// the aggregator, day counts from the business calendar.
type Input struct {
	InitialTotalPoints      float64
	CurrentRemainingPoints  float64
	CompletedPoints         float64
	TotalSprintBusinessDays int
	ElapsedBusinessDays     int
	TeamVelocity            *float64 // nil or <= 0 means linear burndown
}

// Result is the derived drift for one sprint. Positive Drift means the sprint
// is behind plan.
type Result struct {
	Drift                   float64     `json:"driftScore"`
	PlannedRemainingPoints  float64     `json:"plannedRemainingPoints"`
	RawCalculatedRemaining  float64     `json:"rawCalculatedRemaining"`
	ExpectedCompletedPoints float64     `json:"expectedCompletedPoints"`
	CompletedPoints         float64     `json:"completedPoints"`
	CurrentRemainingPoints  float64     `json:"currentRemainingPoints"`
	CurrentTotalPoints      float64     `json:"currentTotalPoints"`
	InitialTotalPoints      float64     `json:"initialTotalPoints"`
	DailyRate               float64     `json:"dailyRate"`
	ElapsedBusinessDays     int         `json:"elapsedBusinessDays"`
	TotalSprintBusinessDays int         `json:"totalSprintBusinessDays"`
	TeamVelocity            *float64    `json:"teamVelocity,omitempty"`
	Load                    *SprintLoad `json:"sprintLoad,omitempty"`
}

// Behind reports whether less work is done than expected.
func (r *Result) Behind() bool {
	return r.Drift > 0
}

// Severity grades the drift score.
func (r *Result) Severity() Severity {
	return SeverityFor(r.Drift)
}

// ScopeChange is how much the sprint grew (positive) or shrank since start.
func (r *Result) ScopeChange() float64 {
	return r.CurrentTotalPoints - r.InitialTotalPoints
}

// SeverityFor maps a drift score to its severity.
func SeverityFor(drift float64) Severity {
	abs := drift
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs <= 5:
		return SeverityOnTrack
	case abs <= 15:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}
