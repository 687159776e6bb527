package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStartAndEnd(t *testing.T) {
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i).Add(13 * time.Hour)
		assert.Equal(t, monday, WeekStart(d), "week start of %s", d.Weekday())
		assert.Equal(t, monday.AddDate(0, 0, 4), WeekEnd(d), "week end of %s", d.Weekday())
	}
	// Sunday belongs to the week that started the Monday before.
	assert.Equal(t, monday, WeekStart(time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC)))
}

func TestIsWeekend(t *testing.T) {
	want := []bool{false, false, false, false, false, true, true}
	for i, w := range want {
		d := monday.AddDate(0, 0, i)
		assert.Equal(t, w, IsWeekend(d), d.Weekday().String())
	}
}

func TestSameDay_IgnoresOffset(t *testing.T) {
	late := time.Date(2026, 10, 12, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	early := time.Date(2026, 10, 12, 1, 0, 0, 0, time.FixedZone("JST", 9*3600))

	assert.True(t, SameDay(late, early))
	assert.False(t, SameDay(late, early.AddDate(0, 0, 1)))
	assert.Equal(t, monday, DateOf(late))
}

func TestDaysBetween(t *testing.T) {
	days := DaysBetween(monday, monday.AddDate(0, 0, 4))
	require.Len(t, days, 5)
	assert.Equal(t, monday, days[0])
	assert.Equal(t, monday.AddDate(0, 0, 4), days[4])

	assert.Len(t, DaysBetween(monday, monday), 1)
	assert.Nil(t, DaysBetween(tuesday, monday))
}

func TestWindow(t *testing.T) {
	w := WindowOf(wednesday)
	assert.Equal(t, monday, w.Start)
	assert.Len(t, w.Weekdays(), 5)
	assert.True(t, w.Contains(monday))
	assert.False(t, w.Contains(saturday))
	assert.Equal(t, "2026-10-12..2026-10-16", w.String())
}

func TestIsFuture(t *testing.T) {
	c := testClock()
	assert.False(t, IsFuture(c, wednesday))
	assert.False(t, IsFuture(c, tuesday))
	assert.True(t, IsFuture(c, thursday))
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2026-10-12")
	require.NoError(t, err)
	assert.Equal(t, monday, d)
	assert.Equal(t, "2026-10-12", FormatDate(d))

	_, err = ParseDate("12/10/2026")
	assert.Error(t, err)
}
