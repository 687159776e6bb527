package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeekStatus is a coarse, informational classification of a week's total.
// It does not require each day to be fully submitted.
type WeekStatus int

const (
	WeekDraft WeekStatus = iota
	WeekPending
	WeekSubmitted
)

func (s WeekStatus) String() string {
	switch s {
	case WeekPending:
		return "Pending"
	case WeekSubmitted:
		return "Submitted"
	default:
		return "Draft"
	}
}

// Progress is a week's total measured against the target.
type Progress struct {
	Total   float64
	Target  float64
	Percent int
}

// WeekRow is one line of a trailing-weeks table.
type WeekRow struct {
	Window         Window
	TotalHours     float64
	DraftCount     int
	SubmittedCount int
	TargetPercent  int
}

// WeeklyAggregator rolls day totals up into working weeks.
type WeeklyAggregator struct {
	days   *DayAggregator
	target decimal.Decimal
}

// NewWeeklyAggregator reports against targetHours, defaulting to
// DefaultWeeklyTargetHours when non-positive.
func NewWeeklyAggregator(days *DayAggregator, targetHours float64) *WeeklyAggregator {
	if targetHours <= 0 {
		targetHours = DefaultWeeklyTargetHours
	}
	return &WeeklyAggregator{days: days, target: decimal.NewFromFloat(targetHours)}
}

// TotalHours sums the five weekdays of w.
func (a *WeeklyAggregator) TotalHours(w Window) float64 {
	days := w.Weekdays()
	hours := make([]float64, 0, len(days))
	for _, d := range days {
		hours = append(hours, a.days.HoursOn(d))
	}
	return SumHours(hours...)
}

// Status classifies w by its total alone.
func (a *WeeklyAggregator) Status(w Window) WeekStatus {
	total := decimal.NewFromFloat(a.TotalHours(w))
	switch {
	case total.GreaterThanOrEqual(a.target):
		return WeekSubmitted
	case total.IsPositive():
		return WeekPending
	default:
		return WeekDraft
	}
}

// Progress returns w's total against the target.
func (a *WeeklyAggregator) Progress(w Window) Progress {
	total := a.TotalHours(w)
	target, _ := a.target.Float64()
	return Progress{Total: total, Target: target, Percent: a.percent(total)}
}

func (a *WeeklyAggregator) percent(total float64) int {
	t := decimal.NewFromFloat(total)
	switch {
	case !t.IsPositive():
		return 0
	case t.GreaterThanOrEqual(a.target):
		return 100
	}
	return int(t.Div(a.target).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// Trailing returns n rows, starting with the week of anchor and going back
// one week per row.
func (a *WeeklyAggregator) Trailing(anchor time.Time, n int) []WeekRow {
	rows := make([]WeekRow, 0, n)
	start := WeekStart(anchor)
	for i := 0; i < n; i++ {
		w := WindowOf(AddWeeks(start, -i))
		row := WeekRow{Window: w, TotalHours: a.TotalHours(w)}
		for _, d := range w.Weekdays() {
			for _, e := range a.days.EntriesOn(d) {
				if e.Status == StatusDraft {
					row.DraftCount++
				} else if e.Status.Locked() {
					row.SubmittedCount++
				}
			}
		}
		row.TargetPercent = a.percent(row.TotalHours)
		rows = append(rows, row)
	}
	return rows
}
