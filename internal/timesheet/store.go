// Package timesheet holds the entry lifecycle and hour-accounting rules of the
// employee timesheet, independent of how entries are stored.
package timesheet

import (
	"context"
	"time"
)

// EntryStore is the remote collection of time entries. Implementations
// return *Error values; anything else is treated as a transport failure.
type EntryStore interface {
	ListEntries(ctx context.Context, userID string, from, to time.Time) ([]Entry, error)
	CreateEntry(ctx context.Context, f Fields) (*Entry, error)
	UpdateEntry(ctx context.Context, id string, f EditFields) (*Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	// SubmitEntries moves every draft in [from, to] to submitted, or none.
	SubmitEntries(ctx context.Context, from, to time.Time) (int, error)
	Summary(ctx context.Context, from, to time.Time, userID string) (*Summary, error)
}

// ProjectSource lists the projects entries may be logged against.
type ProjectSource interface {
	ListProjects(ctx context.Context) ([]Project, error)
}
