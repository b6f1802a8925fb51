package drift

import (
	"math"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// Calculator computes sprint drift. It holds no state and is safe to share.
type Calculator struct{}

// NewCalculator creates a new Calculator instance.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate projects expected progress and compares it with completed work.
//
// With a team velocity the expected burn is the velocity spread over the
// sprint's business days, capped at the sprint's current total scope. Without
// one the initial commitment burns down linearly. Values are rounded to one
// decimal only after every intermediate result is known.
func (c *Calculator) Calculate(in Input) (*Result, error) {
	total := in.TotalSprintBusinessDays
	if total <= 0 {
		return nil, sprint.ConfigError(
			"set totalBusinessDays for the sprint or fix its start and end dates",
			"sprint spans %d business days", total,
		)
	}

	days := float64(total)
	elapsed := float64(in.ElapsedBusinessDays)
	initial := in.InitialTotalPoints
	currentTotal := in.CurrentRemainingPoints + in.CompletedPoints

	var (
		dailyRate, expected, planned float64
		load                         *SprintLoad
		velocity                     *float64
	)

	if in.TeamVelocity != nil && *in.TeamVelocity > 0 {
		v := *in.TeamVelocity
		velocity = &v
		dailyRate = v / days
		expected = math.Min(currentTotal, dailyRate*elapsed)
		planned = math.Max(0, initial-expected)
		load = classifyLoad(initial, v, dailyRate, days)
	} else {
		ratio := elapsed / days
		expected = initial * ratio
		planned = math.Max(0, initial*(1-ratio))
		dailyRate = initial / days
	}

	return &Result{
		Drift:                   round1(expected - in.CompletedPoints),
		PlannedRemainingPoints:  round1(planned),
		RawCalculatedRemaining:  initial - expected,
		ExpectedCompletedPoints: round1(expected),
		CompletedPoints:         in.CompletedPoints,
		CurrentRemainingPoints:  in.CurrentRemainingPoints,
		CurrentTotalPoints:      currentTotal,
		InitialTotalPoints:      initial,
		DailyRate:               round1(dailyRate),
		ElapsedBusinessDays:     in.ElapsedBusinessDays,
		TotalSprintBusinessDays: total,
		TeamVelocity:            velocity,
		Load:                    load,
	}, nil
}

func classifyLoad(initial, velocity, dailyRate, days float64) *SprintLoad {
	pct := int(math.Round(initial / velocity * 100))
	switch {
	case initial < velocity:
		return &SprintLoad{
			Class:                 LoadLight,
			LoadPercentage:        pct,
			ExpectedCompletionDay: round1(math.Min(days, initial/dailyRate)),
		}
	case initial > velocity:
		return &SprintLoad{
			Class:            LoadHeavy,
			LoadPercentage:   pct,
			OvercommitPoints: initial - velocity,
		}
	default:
		return &SprintLoad{Class: LoadNormal, LoadPercentage: 100}
	}
}

// round1 rounds half up to one decimal place.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// ResolveTimeShift picks the business-day offset applied to today. The
// deprecated future-days value is honoured only when no time shift is given.
func ResolveTimeShift(timeShift, futureDays *int) int {
	if timeShift != nil {
		return *timeShift
	}
	if futureDays != nil {
		return *futureDays
	}
	return 0
}
