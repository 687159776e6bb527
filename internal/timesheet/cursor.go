package timesheet

import "time"

// Navigation horizons used by the two week views.
const (
	EmployeeHorizonWeeks = 3
	AdminHorizonWeeks    = 27
)

// WeekCursor tracks the displayed week. It never moves past the current
// week and never before horizon weeks earlier.
type WeekCursor struct {
	clock   Clock
	horizon int
	current time.Time
}

// NewWeekCursor returns a cursor positioned on the current week.
func NewWeekCursor(clock Clock, horizonWeeks int) *WeekCursor {
	if horizonWeeks < 0 {
		horizonWeeks = 0
	}
	c := &WeekCursor{clock: clock, horizon: horizonWeeks}
	c.current = c.Latest()
	return c
}

// Latest is the week-start of today's week.
func (c *WeekCursor) Latest() time.Time {
	return WeekStart(Today(c.clock))
}

// Earliest is the oldest week-start the cursor may show.
func (c *WeekCursor) Earliest() time.Time {
	return AddWeeks(c.Latest(), -c.horizon)
}

// Current returns the displayed week-start, pulled back into bounds if the
// clock has moved since the last navigation.
func (c *WeekCursor) Current() time.Time {
	c.clamp()
	return c.current
}

// Window returns the displayed working week.
func (c *WeekCursor) Window() Window {
	return WindowOf(c.Current())
}

func (c *WeekCursor) CanPrev() bool { return c.Current().After(c.Earliest()) }

func (c *WeekCursor) CanNext() bool { return c.Current().Before(c.Latest()) }

// Prev moves one week back. It reports false and stays put at the bound.
func (c *WeekCursor) Prev() bool {
	if !c.CanPrev() {
		return false
	}
	c.current = AddWeeks(c.current, -1)
	return true
}

// Next moves one week forward. It reports false and stays put on the
// current week.
func (c *WeekCursor) Next() bool {
	if !c.CanNext() {
		return false
	}
	c.current = AddWeeks(c.current, 1)
	return true
}

// GoToCurrent jumps back to today's week.
func (c *WeekCursor) GoToCurrent() {
	c.current = c.Latest()
}

// IsCurrent reports whether today's week is displayed.
func (c *WeekCursor) IsCurrent() bool {
	return c.Current().Equal(c.Latest())
}

func (c *WeekCursor) clamp() {
	if latest := c.Latest(); c.current.After(latest) {
		c.current = latest
	}
	if earliest := c.Earliest(); c.current.Before(earliest) {
		c.current = earliest
	}
}
