package timesheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ClockLayout is the layout of optional start/end wall-clock times.
const ClockLayout = "15:04"

// Status is the lifecycle state of a single entry.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
)

// Locked reports whether the employee can no longer change the entry.
func (s Status) Locked() bool {
	return s == StatusSubmitted || s == StatusApproved
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved:
		return true
	}
	return false
}

// Entry is one block of logged work.
type Entry struct {
	ID            string
	UserID        string
	ProjectID     string
	ProjectName   string
	Description   string
	Date          time.Time
	StartTime     string
	EndTime       string
	DurationHours float64
	BreakMinutes  int
	Status        Status
	SubmittedAt   *time.Time
}

// HasTimes reports whether the entry was logged with a start and end.
func (e Entry) HasTimes() bool {
	return e.StartTime != "" && e.EndTime != ""
}

// Fields are the values supplied when creating an entry.
type Fields struct {
	ProjectID     string
	Description   string
	Date          time.Time
	StartTime     string
	EndTime       string
	DurationHours float64
	BreakMinutes  int
}

// EditFields replace the editable values of an existing draft. Project and
// date are fixed at creation.
type EditFields struct {
	Description   string
	StartTime     string
	EndTime       string
	DurationHours float64
	BreakMinutes  int
}

// Project is a billable target for entries.
type Project struct {
	ID     string
	Name   string
	Client string
	Active bool
}

// Summary is the remote store's aggregate over a date range.
type Summary struct {
	TotalHours   float64
	TotalEntries int
	Projects     []ProjectHours
}

type ProjectHours struct {
	ProjectID   string
	ProjectName string
	TotalHours  float64
	Entries     int
}

// ────────────────────── Hour arithmetic ──────────────────────

// RoundHours rounds h to one decimal place.
func RoundHours(h float64) float64 {
	f, _ := decimal.NewFromFloat(h).Round(1).Float64()
	return f
}

// SumHours adds hour values without binary drift and rounds to 0.1h.
func SumHours(values ...float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	f, _ := sum.Round(1).Float64()
	return f
}

// ParseClock parses an HH:MM wall-clock time.
func ParseClock(s string) (time.Time, error) {
	return time.Parse(ClockLayout, strings.TrimSpace(s))
}

// DurationFromRange returns the hours between start and end, rounded to
// 0.1h. The break is recorded separately and not subtracted.
func DurationFromRange(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q", start)
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q", end)
	}
	if !e.After(s) {
		return 0, fmt.Errorf("end time must be after start time")
	}
	minutes := decimal.NewFromInt(int64(e.Sub(s) / time.Minute))
	f, _ := minutes.Div(decimal.NewFromInt(60)).Round(1).Float64()
	return f, nil
}

// RangesOverlap reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
