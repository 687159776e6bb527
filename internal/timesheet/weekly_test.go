package timesheet

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullWeek(start Entry) []Entry {
	var entries []Entry
	for i, d := range WindowOf(start.Date).Weekdays() {
		e := start
		e.ID = start.ID + string(rune('a'+i))
		e.Date = d
		entries = append(entries, e)
	}
	return entries
}

func TestWeekly_FortyHoursIsSubmitted(t *testing.T) {
	entries := fullWeek(draft("w", monday, 8))
	weekly := NewWeeklyAggregator(NewDayAggregator(entries), DefaultWeeklyTargetHours)
	w := WindowOf(monday)

	assert.Equal(t, 40.0, weekly.TotalHours(w))
	assert.Equal(t, WeekSubmitted, weekly.Status(w))
	assert.Equal(t, Progress{Total: 40, Target: 40, Percent: 100}, weekly.Progress(w))
}

func TestWeekly_Status(t *testing.T) {
	days := NewDayAggregator([]Entry{draft("a", monday, 7.5), draft("sat", saturday, 8)})
	weekly := NewWeeklyAggregator(days, 0)

	assert.Equal(t, WeekPending, weekly.Status(WindowOf(monday)))
	assert.Equal(t, 7.5, weekly.TotalHours(WindowOf(monday)))
	assert.Equal(t, 19, weekly.Progress(WindowOf(monday)).Percent)
	assert.Equal(t, WeekDraft, weekly.Status(WindowOf(AddWeeks(monday, -1))))
	assert.Equal(t, "Pending", WeekPending.String())
}

func TestWeekly_Trailing(t *testing.T) {
	prev := AddWeeks(monday, -1)
	entries := append(fullWeek(withStatus(draft("p", prev, 8), StatusSubmitted)),
		draft("a", monday, 4),
		withStatus(draft("b", tuesday, 6), StatusApproved),
	)
	weekly := NewWeeklyAggregator(NewDayAggregator(entries), DefaultWeeklyTargetHours)

	rows := weekly.Trailing(wednesday, 4)
	require.Len(t, rows, 4)

	assert.Equal(t, monday, rows[0].Window.Start)
	assert.Equal(t, 10.0, rows[0].TotalHours)
	assert.Equal(t, 1, rows[0].DraftCount)
	assert.Equal(t, 1, rows[0].SubmittedCount)
	assert.Equal(t, 25, rows[0].TargetPercent)

	assert.Equal(t, prev, rows[1].Window.Start)
	assert.Equal(t, 40.0, rows[1].TotalHours)
	assert.Equal(t, 5, rows[1].SubmittedCount)
	assert.Equal(t, 100, rows[1].TargetPercent)

	assert.Equal(t, 0.0, rows[3].TotalHours)
	assert.Equal(t, 0, rows[3].TargetPercent)
}

// The week total always equals the sum of its weekday totals.
func TestWeekly_TotalMatchesDays(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		var entries []Entry
		for i := 0; i < rng.Intn(30); i++ {
			d := AddWeeks(monday, -rng.Intn(3)).AddDate(0, 0, rng.Intn(7))
			entries = append(entries, draft("", d, float64(rng.Intn(40))/10))
		}
		days := NewDayAggregator(entries)
		weekly := NewWeeklyAggregator(days, DefaultWeeklyTargetHours)

		for k := 0; k < 3; k++ {
			w := WindowOf(AddWeeks(monday, -k))
			var sum []float64
			for _, d := range w.Weekdays() {
				sum = append(sum, days.HoursOn(d))
			}
			assert.Equal(t, SumHours(sum...), weekly.TotalHours(w), "round %d week %d", round, k)
		}
	}
}
