package timesheet

import (
	"sort"
	"time"
)

// DayStatus classifies a calendar day by the states of its entries.
type DayStatus int

const (
	DayEmpty DayStatus = iota
	DayDraft
	DayPartiallySubmitted
	DayFullySubmitted
)

func (s DayStatus) String() string {
	switch s {
	case DayDraft:
		return "draft"
	case DayPartiallySubmitted:
		return "partially submitted"
	case DayFullySubmitted:
		return "submitted"
	default:
		return "empty"
	}
}

// DaySummary is the derived view of one date.
type DaySummary struct {
	Date    time.Time
	Entries []Entry
	Hours   float64
	Status  DayStatus
}

// DayAggregator is an immutable index of an entry collection by date.
type DayAggregator struct {
	byDate map[time.Time][]Entry
	byID   map[string]Entry
}

// NewDayAggregator indexes entries by calendar date.
func NewDayAggregator(entries []Entry) *DayAggregator {
	a := &DayAggregator{
		byDate: make(map[time.Time][]Entry),
		byID:   make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		e.Date = DateOf(e.Date)
		a.byDate[e.Date] = append(a.byDate[e.Date], e)
		if e.ID != "" {
			a.byID[e.ID] = e
		}
	}
	for d := range a.byDate {
		day := a.byDate[d]
		sort.SliceStable(day, func(i, j int) bool { return day[i].StartTime < day[j].StartTime })
	}
	return a
}

// Len is the number of indexed entries.
func (a *DayAggregator) Len() int {
	n := 0
	for _, day := range a.byDate {
		n += len(day)
	}
	return n
}

// Find looks an entry up by ID.
func (a *DayAggregator) Find(id string) (Entry, bool) {
	e, ok := a.byID[id]
	return e, ok
}

// EntriesOn returns the entries logged on date.
func (a *DayAggregator) EntriesOn(date time.Time) []Entry {
	day := a.byDate[DateOf(date)]
	out := make([]Entry, len(day))
	copy(out, day)
	return out
}

// HoursOn sums the durations logged on date.
func (a *DayAggregator) HoursOn(date time.Time) float64 {
	return a.hoursOn(date, "")
}

// HoursOnExcluding sums the durations on date, leaving out entry id.
func (a *DayAggregator) HoursOnExcluding(date time.Time, id string) float64 {
	return a.hoursOn(date, id)
}

func (a *DayAggregator) hoursOn(date time.Time, skip string) float64 {
	day := a.byDate[DateOf(date)]
	hours := make([]float64, 0, len(day))
	for _, e := range day {
		if skip != "" && e.ID == skip {
			continue
		}
		hours = append(hours, e.DurationHours)
	}
	return SumHours(hours...)
}

// StatusOf classifies date. A day counts as fully submitted only when it has
// entries and every one of them is locked.
func (a *DayAggregator) StatusOf(date time.Time) DayStatus {
	day := a.byDate[DateOf(date)]
	if len(day) == 0 {
		return DayEmpty
	}
	locked := 0
	for _, e := range day {
		if e.Status.Locked() {
			locked++
		}
	}
	switch {
	case locked == len(day):
		return DayFullySubmitted
	case locked > 0:
		return DayPartiallySubmitted
	default:
		return DayDraft
	}
}

// Drafts returns the draft entries on date.
func (a *DayAggregator) Drafts(date time.Time) []Entry {
	var drafts []Entry
	for _, e := range a.byDate[DateOf(date)] {
		if e.Status == StatusDraft {
			drafts = append(drafts, e)
		}
	}
	return drafts
}

func (a *DayAggregator) HasDrafts(date time.Time) bool {
	return len(a.Drafts(date)) > 0
}

// Day bundles the derived values of date.
func (a *DayAggregator) Day(date time.Time) DaySummary {
	return DaySummary{
		Date:    DateOf(date),
		Entries: a.EntriesOn(date),
		Hours:   a.HoursOn(date),
		Status:  a.StatusOf(date),
	}
}
