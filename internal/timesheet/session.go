package timesheet

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Phase is the state of the session's remote traffic.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseMutating
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseFetching:
		return "fetching"
	case PhaseMutating:
		return "mutating"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// ErrSuperseded is returned by a fetch whose response arrived after a newer
// fetch was issued. Its result is discarded.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

// FetchRange is how far around today the session loads entries. It is wider
// than any visible week so day lookups never fall off the edge.
type FetchRange struct {
	MonthsBack   int
	WeeksForward int
}

var DefaultFetchRange = FetchRange{MonthsBack: 3, WeeksForward: 1}

// Session owns the entry collection of one user. Each fetch replaces the
// collection wholesale; only the most recently issued fetch may do so.
type Session struct {
	store  EntryStore
	clock  Clock
	userID string
	rng    FetchRange

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	days   *DayAggregator
	phase  Phase
	err    error
}

type SessionOption func(*Session)

// WithFetchRange overrides DefaultFetchRange.
func WithFetchRange(r FetchRange) SessionOption {
	return func(s *Session) { s.rng = r }
}

// NewSession returns an empty session. Call Refresh to load entries.
func NewSession(store EntryStore, clock Clock, userID string, opts ...SessionOption) *Session {
	s := &Session{
		store:  store,
		clock:  clock,
		userID: userID,
		rng:    DefaultFetchRange,
		days:   NewDayAggregator(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) UserID() string { return s.userID }

func (s *Session) Clock() Clock { return s.clock }

// FetchBounds returns the date range loaded by Refresh.
func (s *Session) FetchBounds() (time.Time, time.Time) {
	today := Today(s.clock)
	return today.AddDate(0, -s.rng.MonthsBack, 0), today.AddDate(0, 0, 7*s.rng.WeeksForward)
}

// Days returns the current snapshot. It is never nil.
func (s *Session) Days() *DayAggregator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.days
}

// Phase returns the current traffic state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Err is the failure that put the session into PhaseError.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Refresh reloads the collection. A fetch still in flight is cancelled and
// its response, should it arrive anyway, is dropped.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.phase = PhaseFetching
	s.mu.Unlock()
	defer cancel()

	from, to := s.FetchBounds()
	entries, err := s.store.ListEntries(fetchCtx, s.userID, from, to)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		err = asStoreError(err)
		s.phase, s.err = PhaseError, err
		return err
	}
	s.days = NewDayAggregator(entries)
	s.phase, s.err = PhaseIdle, nil
	return nil
}

// mutate runs op against the store and then re-derives the collection from
// a fresh fetch. Local state is never patched. A failed refresh after a
// successful op leaves the session in PhaseError without failing the op.
func (s *Session) mutate(ctx context.Context, op func(context.Context) error) error {
	s.mu.Lock()
	s.phase = PhaseMutating
	s.mu.Unlock()

	if err := op(ctx); err != nil {
		err = asStoreError(err)
		s.mu.Lock()
		s.phase, s.err = PhaseError, err
		s.mu.Unlock()
		return err
	}

	_ = s.Refresh(ctx)
	return nil
}

// Summary asks the store for its own aggregate over the range.
func (s *Session) Summary(ctx context.Context, from, to time.Time) (*Summary, error) {
	sum, err := s.store.Summary(ctx, DateOf(from), DateOf(to), s.userID)
	if err != nil {
		return nil, asStoreError(err)
	}
	return sum, nil
}
