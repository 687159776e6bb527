package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayAggregator_StatusOf(t *testing.T) {
	days := NewDayAggregator([]Entry{
		draft("a", monday, 2),
		draft("b", tuesday, 2),
		withStatus(draft("c", tuesday, 3), StatusSubmitted),
		withStatus(draft("d", wednesday, 4), StatusSubmitted),
		withStatus(draft("e", wednesday, 4), StatusApproved),
	})

	assert.Equal(t, DayDraft, days.StatusOf(monday))
	assert.Equal(t, DayPartiallySubmitted, days.StatusOf(tuesday))
	assert.Equal(t, DayFullySubmitted, days.StatusOf(wednesday))
	assert.Equal(t, DayEmpty, days.StatusOf(thursday))
}

func TestDayAggregator_HoursAndEntries(t *testing.T) {
	late := draft("late", monday.Add(23*time.Hour), 0.1)
	days := NewDayAggregator([]Entry{
		draft("a", monday, 2.7),
		draft("b", monday, 2.7),
		draft("c", monday, 2.5),
		late,
	})

	assert.Len(t, days.EntriesOn(monday), 4)
	assert.Equal(t, 8.0, days.HoursOn(monday))
	assert.Equal(t, 5.3, days.HoursOnExcluding(monday, "a"))
	assert.Equal(t, 0.0, days.HoursOn(tuesday))
	assert.Equal(t, 4, days.Len())

	e, ok := days.Find("late")
	require.True(t, ok)
	assert.Equal(t, monday, e.Date)
}

func TestDayAggregator_Drafts(t *testing.T) {
	days := NewDayAggregator([]Entry{
		draft("a", monday, 2),
		withStatus(draft("b", monday, 2), StatusSubmitted),
	})

	drafts := days.Drafts(monday)
	require.Len(t, drafts, 1)
	assert.Equal(t, "a", drafts[0].ID)
	assert.True(t, days.HasDrafts(monday))
	assert.False(t, days.HasDrafts(tuesday))

	sum := days.Day(monday)
	assert.Equal(t, DayPartiallySubmitted, sum.Status)
	assert.Equal(t, 4.0, sum.Hours)
}
