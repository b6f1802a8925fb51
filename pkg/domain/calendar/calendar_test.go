package calendar_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/calendar"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// 2024-03-04 is a Monday.
func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDaysBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"monday to friday same week", day(4), day(8), 4},
		{"monday to monday", day(4), day(4), 0},
		{"monday to next monday", day(4), day(11), 5},
		{"two week sprint", day(4), day(18), 10},
		{"friday to monday", day(8), day(11), 1},
		{"saturday to monday", day(9), day(11), 0},
		{"end before start", day(11), day(4), 0},
		{"time of day ignored", day(4).Add(15 * time.Hour), day(8).Add(2 * time.Hour), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calendar.BusinessDaysBetween(tt.start, tt.end); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestShiftBusinessDays(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{"friday plus one is monday", day(8), 1, day(11)},
		{"monday minus one is friday", day(11), -1, day(8)},
		{"zero keeps date", day(6), 0, day(6)},
		{"wednesday plus five", day(6), 5, day(13)},
		{"saturday plus one is monday", day(9), 1, day(11)},
		{"monday minus five", day(11), -5, day(4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calendar.ShiftBusinessDays(tt.from, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want.Format("Mon 2006-01-02"), got.Format("Mon 2006-01-02"))
			}
		})
	}
}

func TestShiftAndCountAgree(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	base := day(4)
	properties.Property("counting a forward shift returns the shift", prop.ForAll(
		func(offset, n int) bool {
			d := calendar.ShiftBusinessDays(base, offset)
			return calendar.BusinessDaysBetween(d, calendar.ShiftBusinessDays(d, n)) == n
		},
		gen.IntRange(-400, 400),
		gen.IntRange(0, 120),
	))

	properties.Property("shifting back undoes shifting forward", prop.ForAll(
		func(offset, n int) bool {
			d := calendar.ShiftBusinessDays(base, offset)
			return calendar.ShiftBusinessDays(calendar.ShiftBusinessDays(d, n), -n).Equal(d)
		},
		gen.IntRange(-400, 400),
		gen.IntRange(0, 120),
	))

	properties.TestingRun(t)
}

func TestNewBreakdown(t *testing.T) {
	b := calendar.NewBreakdown(day(4), day(18), day(13))
	if b.Elapsed != 7 {
		t.Errorf("expected 7 elapsed business days, got %d", b.Elapsed)
	}
	if b.Total != 10 {
		t.Errorf("expected 10 total business days, got %d", b.Total)
	}
	if len(b.Days) != 10 {
		t.Errorf("expected 10 listed days, got %d", len(b.Days))
	}
	if b.CalendarDaysElapsed() != 9 {
		t.Errorf("expected 9 calendar days, got %d", b.CalendarDaysElapsed())
	}
}
