// Package analytics summarizes delivery history across closed sprints.
package analytics

import (
	"github.com/cockroachdb/errors"
	"github.com/montanaflynn/stats"
)

// TrendDirection indicates the direction of velocity change over time.
type TrendDirection string

const (
	// TrendAccelerating indicates velocity is increasing.
	TrendAccelerating TrendDirection = "accelerating"
	// TrendDecelerating indicates velocity is decreasing.
	TrendDecelerating TrendDirection = "decelerating"
	// TrendStable indicates velocity is relatively constant.
	TrendStable TrendDirection = "stable"
)

// SprintVelocity is the delivered scope of one closed sprint.
type SprintVelocity struct {
	SprintID        int     `json:"sprintId"`
	SprintName      string  `json:"sprintName"`
	CompletedPoints float64 `json:"completedPoints"`
}

// ConfidenceInterval represents low/expected/high velocity estimates.
type ConfidenceInterval struct {
	Low      float64 `json:"low"`      // 20th percentile
	Expected float64 `json:"expected"` // median
	High     float64 `json:"high"`     // 80th percentile
}

// Range returns the difference between high and low estimates.
func (ci ConfidenceInterval) Range() float64 {
	return ci.High - ci.Low
}

// IsNarrow returns true if the confidence interval is relatively tight.
func (ci ConfidenceInterval) IsNarrow() bool {
	if ci.Expected == 0 {
		return false
	}
	return ci.Range()/ci.Expected < 0.5 // Less than 50% variance
}

// VelocityStats holds statistical summary of velocity data.
type VelocityStats struct {
	Mean    float64            `json:"mean"`    // Average velocity
	Median  float64            `json:"median"`  // Median velocity
	StdDev  float64            `json:"stdDev"`  // Standard deviation
	Min     float64            `json:"min"`     // Minimum observed velocity
	Max     float64            `json:"max"`     // Maximum observed velocity
	Samples int                `json:"samples"` // Number of samples
	Range   ConfidenceInterval `json:"range"`
	Trend   TrendDirection     `json:"trend"`
	Sprints []SprintVelocity   `json:"sprints"`
}

// Variability returns the coefficient of variation (StdDev/Mean).
func (vs VelocityStats) Variability() float64 {
	if vs.Mean == 0 {
		return 0
	}
	return vs.StdDev / vs.Mean
}

// IsConsistent returns true if velocity is relatively stable.
func (vs VelocityStats) IsConsistent() bool {
	return vs.Variability() < 0.3 // Less than 30% coefficient of variation
}

// Suggested is the velocity to plan the next sprint with.
func (vs VelocityStats) Suggested() float64 {
	return vs.Median
}

// ErrNoSamples is returned when there is no closed sprint to learn from.
var ErrNoSamples = errors.New("no velocity samples")

// Summarize computes velocity statistics. sprints must be ordered oldest
// first; the trend compares the newer half with the older half.
func Summarize(sprints []SprintVelocity) (*VelocityStats, error) {
	if len(sprints) == 0 {
		return nil, ErrNoSamples
	}
	data := make(stats.Float64Data, len(sprints))
	for i, s := range sprints {
		data[i] = s.CompletedPoints
	}

	vs := &VelocityStats{Samples: len(data), Sprints: sprints}
	var err error
	if vs.Mean, err = stats.Mean(data); err != nil {
		return nil, errors.Wrap(err, "mean")
	}
	if vs.Median, err = stats.Median(data); err != nil {
		return nil, errors.Wrap(err, "median")
	}
	if vs.StdDev, err = stats.StandardDeviation(data); err != nil {
		return nil, errors.Wrap(err, "standard deviation")
	}
	if vs.Min, err = stats.Min(data); err != nil {
		return nil, errors.Wrap(err, "min")
	}
	if vs.Max, err = stats.Max(data); err != nil {
		return nil, errors.Wrap(err, "max")
	}

	vs.Range = ConfidenceInterval{Low: vs.Min, Expected: vs.Median, High: vs.Max}
	if len(data) >= 5 {
		low, errLow := stats.Percentile(data, 20)
		high, errHigh := stats.Percentile(data, 80)
		if errLow == nil && errHigh == nil {
			vs.Range.Low, vs.Range.High = low, high
		}
	}

	vs.Trend = trendOf(data)
	return vs, nil
}

func trendOf(data stats.Float64Data) TrendDirection {
	if len(data) < 2 {
		return TrendStable
	}
	half := len(data) / 2
	older, _ := stats.Mean(data[:half])
	newer, _ := stats.Mean(data[len(data)-half:])
	if older == 0 {
		if newer > 0 {
			return TrendAccelerating
		}
		return TrendStable
	}
	change := (newer - older) / older
	switch {
	case change > 0.1:
		return TrendAccelerating
	case change < -0.1:
		return TrendDecelerating
	default:
		return TrendStable
	}
}
