package timesheet

import (
	"time"
)

// DateLayout is the wire and display layout of calendar dates.
const DateLayout = "2006-01-02"

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock, optionally in a fixed location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location != nil {
		return time.Now().In(c.Location)
	}
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// ────────────────────── Dates ──────────────────────
//
// A calendar date is a time.Time at midnight UTC carrying the year, month and
// day exactly as written in the source timestamp. Offsets are dropped, never
// converted, so two timestamps stored with different zones still land on the
// day their wall clocks show.

// DateOf normalizes t to its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of the clock's current time.
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return DateOf(d).Format(DateLayout)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// IsWeekend reports whether d is a Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsFuture reports whether d is strictly after today.
func IsFuture(c Clock, d time.Time) bool {
	return DateOf(d).After(Today(c))
}

// WeekStart returns the Monday of the week containing d.
func WeekStart(d time.Time) time.Time {
	d = DateOf(d)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	return d.AddDate(0, 0, -(wd - 1))
}

// WeekEnd returns the Friday of the week containing d. The working week is
// Monday to Friday.
func WeekEnd(d time.Time) time.Time {
	return WeekStart(d).AddDate(0, 0, 4)
}

// AddWeeks shifts d by n whole weeks.
func AddWeeks(d time.Time, n int) time.Time {
	return DateOf(d).AddDate(0, 0, 7*n)
}

// DaysBetween returns every date from start to end inclusive, in order.
// It returns nil when end is before start.
func DaysBetween(start, end time.Time) []time.Time {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ────────────────────── WeekWindow ──────────────────────

// Window is a Monday to Friday working week.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowOf returns the working week containing d.
func WindowOf(d time.Time) Window {
	return Window{Start: WeekStart(d), End: WeekEnd(d)}
}

// Weekdays returns the five dates of the window.
func (w Window) Weekdays() []time.Time {
	return DaysBetween(w.Start, w.End)
}

// Contains reports whether d falls within the window.
func (w Window) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

func (w Window) String() string {
	return FormatDate(w.Start) + ".." + FormatDate(w.End)
}
