package temporal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aegis-rag/sdk/types"
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateIdle means no query has been applied yet.
	StateIdle State = iota

	// StateLoading means a point-in-time query is in flight.
	StateLoading

	// StateLoaded means the session holds the snapshot for the applied date.
	StateLoaded

	// StateError means the most recent apply failed. A previously loaded
	// snapshot, if any, is retained alongside the error.
	StateError
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// QuickJump presets set the selected date to now-minus-N-days in one call.
type QuickJump int

const (
	// WeekAgo selects the date 7 days before now.
	WeekAgo QuickJump = 7

	// MonthAgo selects the date 30 days before now.
	MonthAgo QuickJump = 30

	// QuarterAgo selects the date 90 days before now.
	QuarterAgo QuickJump = 90
)

// Days returns the number of days the preset jumps back.
func (q QuickJump) Days() int {
	return int(q)
}

// Sentinel errors returned by Session operations.
var (
	// ErrNoSnapshot is returned when an export is requested before any
	// snapshot has been loaded.
	ErrNoSnapshot = errors.New("temporal: no snapshot loaded")

	// ErrApplySuperseded is returned to an Apply caller whose response was
	// discarded because a newer apply was issued while it was in flight.
	// The session state reflects the newer apply only.
	ErrApplySuperseded = errors.New("temporal: apply superseded by a newer apply")
)

// defaultRangeYears is the range span used when the graph carries no
// parseable creation timestamps.
const defaultRangeYears = 1

// Session is a stateful time-travel query session. It models the two-phase
// "staged then committed" date pair explicitly: the selected date is the
// pending value a user is manipulating, and the applied date is the value a
// query was actually run against. The snapshot only ever reflects the
// applied date, never the selected one.
//
// A Session is safe for concurrent use. When applies race, a request
// generation counter guarantees that only the response matching the newest
// apply is committed; responses from superseded applies are discarded.
type Session struct {
	client *Client
	now    func() time.Time

	mu         sync.Mutex
	minDate    time.Time
	maxDate    time.Time
	selected   time.Time
	applied    time.Time
	appliedSet bool
	snapshot   *Snapshot
	lastErr    error
	state      State
	generation uint64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock overrides the session's time source. Intended for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// WithGraphData derives the session's valid date range from the given graph
// at construction time. Equivalent to calling SetDateRangeFromGraph.
func WithGraphData(graph types.GraphData) SessionOption {
	return func(s *Session) {
		s.minDate, s.maxDate = DeriveDateRange(graph, s.now())
	}
}

func newSession(client *Client, opts ...SessionOption) *Session {
	s := &Session{
		client: client,
		now:    time.Now,
		state:  StateIdle,
	}

	for _, opt := range opts {
		opt(s)
	}

	now := s.now()
	if s.maxDate.IsZero() {
		s.minDate = now.AddDate(-defaultRangeYears, 0, 0)
		s.maxDate = now
	}

	// The pending date defaults to "now".
	s.selected = now

	return s
}

// DeriveDateRange computes the valid date range for temporal queries over a
// graph. When the graph contains nodes with parseable creation timestamps,
// the range is [earliest creation, now]; otherwise it defaults to
// [now - 1 year, now] so the range is never meaningless.
func DeriveDateRange(graph types.GraphData, now time.Time) (min, max time.Time) {
	max = now
	for _, node := range graph.Nodes {
		created, ok := node.CreatedAt()
		if !ok {
			continue
		}
		if min.IsZero() || created.Before(min) {
			min = created
		}
	}

	if min.IsZero() {
		min = now.AddDate(-defaultRangeYears, 0, 0)
	}

	return min, max
}

// SetDateRangeFromGraph recomputes the valid date range from graph data and
// clamps the selected date into the new range.
func (s *Session) SetDateRangeFromGraph(graph types.GraphData) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.minDate, s.maxDate = DeriveDateRange(graph, now)
	s.selected = s.clampLocked(s.selected)
}

// DateRange returns the valid [min, max] range for the selected date.
func (s *Session) DateRange() (min, max time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minDate, s.maxDate
}

// SetSelectedDate stages a new pending date, clamped into the valid range.
// It performs no backend call; the clamped value is returned.
func (s *Session) SetSelectedDate(date time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = s.clampLocked(date)
	return s.selected
}

// SetSelectedEpochMilli stages a pending date given as epoch milliseconds,
// the representation produced by range-slider controls.
func (s *Session) SetSelectedEpochMilli(ms int64) time.Time {
	return s.SetSelectedDate(time.UnixMilli(ms))
}

// Jump stages the date the preset number of days before now.
func (s *Session) Jump(preset QuickJump) time.Time {
	return s.SetSelectedDate(s.now().AddDate(0, 0, -preset.Days()))
}

// SelectedDate returns the pending date.
func (s *Session) SelectedDate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// AppliedDate returns the committed date and whether any apply has happened.
func (s *Session) AppliedDate() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied, s.appliedSet
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the snapshot for the applied date, or nil before the
// first successful apply. A failed apply does not clear a previously loaded
// snapshot, so stale-but-valid results remain available next to LastError.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// LastError returns the error from the most recent failed apply, or nil.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Loading reports whether a query is currently in flight.
func (s *Session) Loading() bool {
	return s.State() == StateLoading
}

// Apply commits the selected date and fetches the snapshot for it. Applying
// the same date twice issues two queries unless the client has a cache
// configured.
//
// Apply blocks until the query completes. If a newer Apply is issued while
// this one is in flight, the late response is discarded and
// ErrApplySuperseded is returned: the session only ever reflects the newest
// committed date.
//
// On failure the session enters StateError with LastError set, but retains
// any previously loaded snapshot.
func (s *Session) Apply(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	date := s.selected
	s.applied = date
	s.appliedSet = true
	s.state = StateLoading
	s.mu.Unlock()

	snapshot, err := s.client.PointInTime(ctx, date)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer apply owns the session state now.
	if gen != s.generation {
		return ErrApplySuperseded
	}

	if err != nil {
		s.state = StateError
		s.lastErr = err
		return err
	}

	s.snapshot = snapshot
	s.state = StateLoaded
	s.lastErr = nil
	return nil
}

// clampLocked restricts a date to [minDate, now]. The upper bound is "now"
// rather than maxDate so a stale range never permits future dates.
func (s *Session) clampLocked(date time.Time) time.Time {
	if !s.minDate.IsZero() && date.Before(s.minDate) {
		return s.minDate
	}

	now := s.now()
	upper := s.maxDate
	if upper.IsZero() || now.Before(upper) {
		upper = now
	}
	if date.After(upper) {
		return upper
	}

	return date
}
