package timesheet

import (
	"context"
	"strings"
	"time"
)

// Lifecycle decides and performs entry mutations on behalf of one user.
//
// Entries move draft → submitted → approved. Only drafts may be edited or
// deleted, and submission always covers every draft of a single day.
type Lifecycle struct {
	session   *Session
	validator *CapValidator
}

// NewLifecycle wires a lifecycle to its session and cap validator.
func NewLifecycle(session *Session, validator *CapValidator) *Lifecycle {
	return &Lifecycle{session: session, validator: validator}
}

// DayPermissions is what a view may offer for one date.
type DayPermissions struct {
	Status    DayStatus
	Hours     float64
	Remaining float64
	CanCreate bool
	CanSubmit bool
}

// EntryPermissions is what a view may offer for one entry.
type EntryPermissions struct {
	CanEdit   bool
	CanDelete bool
}

// Permissions projects the rules for date without touching the store.
func (l *Lifecycle) Permissions(date time.Time) DayPermissions {
	days := l.session.Days()
	p := DayPermissions{
		Status:    days.StatusOf(date),
		Hours:     days.HoursOn(date),
		Remaining: l.validator.RemainingHours(days, date),
	}
	p.CanCreate = p.Remaining > 0 && l.validator.CheckAdd(days, date, 0) == nil
	p.CanSubmit = !IsWeekend(date) && days.HasDrafts(date)
	return p
}

// EntryPermissions projects the rules for one entry.
func (l *Lifecycle) EntryPermissions(id string) EntryPermissions {
	e, ok := l.session.Days().Find(id)
	if !ok || checkMutable(e) != nil {
		return EntryPermissions{}
	}
	return EntryPermissions{CanEdit: true, CanDelete: true}
}

// ────────────────────── Create ──────────────────────

// Create logs a new draft entry.
func (l *Lifecycle) Create(ctx context.Context, f Fields) (*Entry, error) {
	f.ProjectID = strings.TrimSpace(f.ProjectID)
	f.Description = strings.TrimSpace(f.Description)
	switch {
	case f.Date.IsZero():
		return nil, validationf("date is required")
	case f.ProjectID == "":
		return nil, validationf("project is required")
	case f.Description == "":
		return nil, validationf("description is required")
	}
	f.Date = DateOf(f.Date)

	hours, err := normalizeHours(f.StartTime, f.EndTime, f.DurationHours, f.BreakMinutes)
	if err != nil {
		return nil, err
	}
	f.DurationHours = hours

	if err := l.validator.CheckAdd(l.session.Days(), f.Date, f.DurationHours); err != nil {
		return nil, err
	}

	var created *Entry
	err = l.session.mutate(ctx, func(ctx context.Context) error {
		e, err := l.session.store.CreateEntry(ctx, f)
		created = e
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ────────────────────── Edit ──────────────────────

// Edit replaces the editable values of a draft entry.
func (l *Lifecycle) Edit(ctx context.Context, id string, f EditFields) (*Entry, error) {
	days := l.session.Days()
	current, ok := days.Find(id)
	if !ok {
		return nil, validationf("entry %s not found", id)
	}
	if err := checkMutable(current); err != nil {
		return nil, err
	}

	f.Description = strings.TrimSpace(f.Description)
	if f.Description == "" {
		return nil, validationf("description is required")
	}
	hours, err := normalizeHours(f.StartTime, f.EndTime, f.DurationHours, f.BreakMinutes)
	if err != nil {
		return nil, err
	}
	f.DurationHours = hours

	if err := l.validator.CheckReplace(days, current.Date, id, f.DurationHours); err != nil {
		return nil, err
	}

	var updated *Entry
	err = l.session.mutate(ctx, func(ctx context.Context) error {
		e, err := l.session.store.UpdateEntry(ctx, id, f)
		updated = e
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ────────────────────── Delete ──────────────────────

// Delete removes a draft entry.
func (l *Lifecycle) Delete(ctx context.Context, id string) error {
	current, ok := l.session.Days().Find(id)
	if !ok {
		return validationf("entry %s not found", id)
	}
	if err := checkMutable(current); err != nil {
		return err
	}
	return l.session.mutate(ctx, func(ctx context.Context) error {
		return l.session.store.DeleteEntry(ctx, id)
	})
}

// ────────────────────── Submit ──────────────────────

// Submit moves every draft on date to submitted in one store call. On
// failure no entry changes state.
func (l *Lifecycle) Submit(ctx context.Context, date time.Time) (int, error) {
	date = DateOf(date)
	if IsWeekend(date) {
		return 0, nothingToSubmitf("weekend days cannot be submitted (%s)", FormatDate(date))
	}
	if !l.session.Days().HasDrafts(date) {
		return 0, nothingToSubmitf("no draft entries on %s", FormatDate(date))
	}

	var n int
	err := l.session.mutate(ctx, func(ctx context.Context) error {
		var err error
		n, err = l.session.store.SubmitEntries(ctx, date, date)
		return err
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ── helpers ──

func checkMutable(e Entry) error {
	if e.Status != StatusDraft {
		return permissionf("entry %s is %s and can no longer be changed", e.ID, e.Status)
	}
	if IsWeekend(e.Date) {
		return permissionf("weekend entry %s is read-only", e.ID)
	}
	return nil
}

// normalizeHours derives the duration from start/end when both are given
// and rejects half-specified ranges and negative values.
func normalizeHours(start, end string, hours float64, breakMinutes int) (float64, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if breakMinutes < 0 {
		return 0, validationf("break minutes must not be negative")
	}
	if (start == "") != (end == "") {
		return 0, validationf("start and end time must be given together")
	}
	if start != "" {
		h, err := DurationFromRange(start, end)
		if err != nil {
			return 0, &Error{Kind: KindValidation, Message: "invalid time range", Err: err}
		}
		return h, nil
	}
	if hours < 0 {
		return 0, validationf("duration must not be negative")
	}
	return RoundHours(hours), nil
}
