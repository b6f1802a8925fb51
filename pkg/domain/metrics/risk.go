package metrics

import (
	"math"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// RiskLevel grades how much of a sprint still needs grooming.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskResult is the grooming risk of a set of issues.
type RiskResult struct {
	GroomedCount          int       `json:"groomedCount"`
	UnpointedNeedingCount int       `json:"unpointedNeedingGrooming"`
	TotalNeedingGrooming  int       `json:"totalNeedingGrooming"`
	Score                 float64   `json:"riskScore"`
	Level                 RiskLevel `json:"riskLevel"`
}

// GroomedPercent is the share of issues already pointed, 0-100.
func (r RiskResult) GroomedPercent() int {
	if r.TotalNeedingGrooming == 0 {
		return 100
	}
	return int(math.Round(float64(r.GroomedCount) / float64(r.TotalNeedingGrooming) * 100))
}

// AssessGroomingRisk scores the share of issues that still lack points.
// Unpointed issues already past the finish line need no grooming and are
// left out.
func AssessGroomingRisk(issues []sprint.Issue, finishLine []string) RiskResult {
	var r RiskResult
	for _, is := range issues {
		switch {
		case is.IsPointed():
			r.GroomedCount++
		case !sprint.ContainsFold(finishLine, is.Status):
			r.UnpointedNeedingCount++
		}
	}
	r.TotalNeedingGrooming = r.GroomedCount + r.UnpointedNeedingCount
	if r.TotalNeedingGrooming > 0 {
		r.Score = round2(1 - float64(r.GroomedCount)/float64(r.TotalNeedingGrooming))
	}
	r.Level = LevelFor(r.Score)
	return r
}

// LevelFor maps a risk score to its level.
func LevelFor(score float64) RiskLevel {
	switch {
	case score > 0.66:
		return RiskHigh
	case score > 0.33:
		return RiskMedium
	default:
		return RiskLow
	}
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
