package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default hour limits.
const (
	DefaultDailyCapHours     = 8.0
	DefaultWeeklyTargetHours = 40.0
)

// CapValidator enforces the per-day hour cap. The weekly figure is a target
// reported by WeeklyAggregator and is never enforced here.
type CapValidator struct {
	clock    Clock
	dailyCap decimal.Decimal
}

// NewCapValidator returns a validator for the given daily cap. A
// non-positive cap falls back to DefaultDailyCapHours.
func NewCapValidator(clock Clock, dailyCapHours float64) *CapValidator {
	if dailyCapHours <= 0 {
		dailyCapHours = DefaultDailyCapHours
	}
	return &CapValidator{clock: clock, dailyCap: decimal.NewFromFloat(dailyCapHours)}
}

// DailyCap returns the configured cap in hours.
func (v *CapValidator) DailyCap() float64 {
	f, _ := v.dailyCap.Float64()
	return f
}

// RemainingHours is the capacity left on date, never negative.
func (v *CapValidator) RemainingHours(days *DayAggregator, date time.Time) float64 {
	return v.remaining(days.HoursOn(date))
}

func (v *CapValidator) remaining(logged float64) float64 {
	left := v.dailyCap.Sub(decimal.NewFromFloat(logged)).Round(1)
	if left.IsNegative() {
		return 0
	}
	f, _ := left.Float64()
	return f
}

// fits compares at 0.1h resolution so that values entered in tenths of an
// hour add up exactly.
func (v *CapValidator) fits(logged, proposed float64) bool {
	total := decimal.NewFromFloat(logged).Add(decimal.NewFromFloat(proposed)).Round(1)
	return total.LessThanOrEqual(v.dailyCap)
}

// CanAdd reports whether proposedHours may be logged on date.
func (v *CapValidator) CanAdd(days *DayAggregator, date time.Time, proposedHours float64) bool {
	return v.CheckAdd(days, date, proposedHours) == nil
}

// CheckAdd explains why CanAdd would be false.
func (v *CapValidator) CheckAdd(days *DayAggregator, date time.Time, proposedHours float64) error {
	switch {
	case IsWeekend(date):
		return validationf("cannot log time on a weekend (%s)", FormatDate(date))
	case IsFuture(v.clock, date):
		return validationf("cannot log time on a future date (%s)", FormatDate(date))
	case days.StatusOf(date) == DayFullySubmitted:
		return validationf("%s is already submitted", FormatDate(date))
	}
	logged := days.HoursOn(date)
	if !v.fits(logged, proposedHours) {
		return v.capExceeded(logged, proposedHours)
	}
	return nil
}

// CheckReplace validates replacing entry id on date with newHours.
func (v *CapValidator) CheckReplace(days *DayAggregator, date time.Time, id string, newHours float64) error {
	others := days.HoursOnExcluding(date, id)
	if !v.fits(others, newHours) {
		return v.capExceeded(others, newHours)
	}
	return nil
}

func (v *CapValidator) capExceeded(logged, proposed float64) *Error {
	return validationf("cannot exceed %s hours per day: current %.1f hours, trying to add %.1f hours",
		v.dailyCap.String(), logged, proposed)
}

// Clamp caps requestedHours to what is left on date.
func (v *CapValidator) Clamp(days *DayAggregator, date time.Time, requestedHours float64) float64 {
	return v.clamp(days.HoursOn(date), requestedHours)
}

// ClampReplace is Clamp for an edit, ignoring the entry being edited.
func (v *CapValidator) ClampReplace(days *DayAggregator, date time.Time, id string, requestedHours float64) float64 {
	return v.clamp(days.HoursOnExcluding(date, id), requestedHours)
}

func (v *CapValidator) clamp(logged, requested float64) float64 {
	if requested <= 0 {
		return 0
	}
	if left := v.remaining(logged); requested > left {
		return left
	}
	return RoundHours(requested)
}
