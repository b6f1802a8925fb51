// Package calendar counts and shifts business days (Monday to Friday).
//
// All functions work on calendar dates: the time of day is dropped and the
// date is taken in the location of the argument. The start date is day 0 and a
// day is credited only once it has fully elapsed, so a count that ends today
// does not include today.
package calendar

import "time"

// Date truncates t to midnight in its own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsBusinessDay reports whether t falls on a weekday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// BusinessDaysBetween counts weekdays d with start <= d < end.
// It returns 0 when end is not after start.
func BusinessDaysBetween(start, end time.Time) int {
	from := Date(start)
	to := Date(end.In(start.Location()))
	count := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			count++
		}
	}
	return count
}

// ShiftBusinessDays moves date by n business days, forward for positive n and
// backward for negative n. Weekends are stepped over, so Friday plus one is
// Monday. A zero shift returns the date unchanged.
func ShiftBusinessDays(date time.Time, n int) time.Time {
	d := Date(date)
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	for n > 0 {
		d = d.AddDate(0, 0, step)
		if IsBusinessDay(d) {
			n--
		}
	}
	return d
}

// BusinessDays lists the weekdays d with start <= d < end.
func BusinessDays(start, end time.Time) []time.Time {
	from := Date(start)
	to := Date(end.In(start.Location()))
	var days []time.Time
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// Breakdown explains how elapsed and total business days were derived for a
// sprint.
type Breakdown struct {
	Start   time.Time   `json:"start"`
	End     time.Time   `json:"end"`
	Today   time.Time   `json:"today"`
	Elapsed int         `json:"elapsedBusinessDays"`
	Total   int         `json:"totalBusinessDays"`
	Days    []time.Time `json:"businessDays"`
}

// CalendarDaysElapsed is the number of whole calendar days from start to today.
func (b Breakdown) CalendarDaysElapsed() int {
	if !b.Today.After(b.Start) {
		return 0
	}
	return int(b.Today.Sub(b.Start).Hours() / 24)
}

// NewBreakdown computes the breakdown for a sprint running from start to end
// as seen on today.
func NewBreakdown(start, end, today time.Time) Breakdown {
	return Breakdown{
		Start:   Date(start),
		End:     Date(end.In(start.Location())),
		Today:   Date(today.In(start.Location())),
		Elapsed: BusinessDaysBetween(start, today),
		Total:   BusinessDaysBetween(start, end),
		Days:    BusinessDays(start, end),
	}
}
