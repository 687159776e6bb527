package timesheet

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// memStore is an in-memory EntryStore for one user.
type memStore struct {
	mu        sync.Mutex
	userID    string
	entries   map[string]Entry
	seq       int
	failNext  error
	listCalls int
}

func newMemStore(userID string, seed ...Entry) *memStore {
	s := &memStore{userID: userID, entries: make(map[string]Entry)}
	for _, e := range seed {
		if e.ID == "" {
			s.seq++
			e.ID = fmt.Sprintf("e-%d", s.seq)
		}
		if e.Status == "" {
			e.Status = StatusDraft
		}
		e.Date = DateOf(e.Date)
		e.UserID = userID
		s.entries[e.ID] = e
	}
	return s
}

func (s *memStore) takeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func (s *memStore) ListEntries(_ context.Context, userID string, from, to time.Time) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	var out []Entry
	for _, e := range s.entries {
		if e.UserID != userID || e.Date.Before(DateOf(from)) || e.Date.After(DateOf(to)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) CreateEntry(_ context.Context, f Fields) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	s.seq++
	e := Entry{
		ID:            fmt.Sprintf("e-%d", s.seq),
		UserID:        s.userID,
		ProjectID:     f.ProjectID,
		Description:   f.Description,
		Date:          DateOf(f.Date),
		StartTime:     f.StartTime,
		EndTime:       f.EndTime,
		DurationHours: f.DurationHours,
		BreakMinutes:  f.BreakMinutes,
		Status:        StatusDraft,
	}
	s.entries[e.ID] = e
	return &e, nil
}

func (s *memStore) UpdateEntry(_ context.Context, id string, f EditFields) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	e, ok := s.entries[id]
	if !ok {
		return nil, FromRemote(RemoteFailure{Status: 404, Code: CodeEntryNotFound})
	}
	if e.Status != StatusDraft {
		return nil, FromRemote(RemoteFailure{Status: 400, Code: CodeEntryNotDraft})
	}
	e.Description = f.Description
	e.StartTime, e.EndTime = f.StartTime, f.EndTime
	e.DurationHours = f.DurationHours
	e.BreakMinutes = f.BreakMinutes
	s.entries[id] = e
	return &e, nil
}

func (s *memStore) DeleteEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	delete(s.entries, id)
	return nil
}

func (s *memStore) SubmitEntries(_ context.Context, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return 0, err
	}
	n := 0
	for id, e := range s.entries {
		if e.Status != StatusDraft || e.Date.Before(DateOf(from)) || e.Date.After(DateOf(to)) {
			continue
		}
		e.Status = StatusSubmitted
		s.entries[id] = e
		n++
	}
	return n, nil
}

func (s *memStore) Summary(_ context.Context, from, to time.Time, _ string) (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := &Summary{}
	var hours []float64
	for _, e := range s.entries {
		if e.Date.Before(DateOf(from)) || e.Date.After(DateOf(to)) {
			continue
		}
		hours = append(hours, e.DurationHours)
		sum.TotalEntries++
	}
	sum.TotalHours = SumHours(hours...)
	return sum, nil
}

func (s *memStore) statusOf(id string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[id].Status
}

// ── fixtures ──

// Wednesday 14 October 2026, mid-afternoon.
var testNow = time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

var (
	monday    = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	tuesday   = monday.AddDate(0, 0, 1)
	wednesday = monday.AddDate(0, 0, 2)
	thursday  = monday.AddDate(0, 0, 3)
	saturday  = monday.AddDate(0, 0, 5)
)

func testClock() Clock { return FixedClock{T: testNow} }

func newTestLifecycle(store *memStore) (*Lifecycle, *Session) {
	clock := testClock()
	session := NewSession(store, clock, store.userID)
	return NewLifecycle(session, NewCapValidator(clock, DefaultDailyCapHours)), session
}

func draft(id string, date time.Time, hours float64) Entry {
	return Entry{ID: id, ProjectID: "p-1", Description: "work", Date: date, DurationHours: hours, Status: StatusDraft}
}

func withStatus(e Entry, s Status) Entry {
	e.Status = s
	return e
}
