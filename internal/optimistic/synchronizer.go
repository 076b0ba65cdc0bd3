// Package optimistic implements client-side optimistic toggles.
//
// Each key (an emoji on an article, a calendar date) owns a Snapshot of what
// the user sees. A toggle applies its effect to the snapshot immediately,
// dispatches the server call on its own goroutine, and settles when the call
// returns: success keeps the optimistic state, failure restores the exact
// snapshot taken before the effect. While a key's call is outstanding that
// key rejects further toggles with ErrPending; other keys are unaffected.
//
// Per key the state machine is Idle -> Pending -> Settled, and Settled
// behaves like Idle for the next toggle.
package optimistic

import (
	"context"
	"errors"
	"sync"
)

// ErrPending is returned when a key already has a call in flight.
var ErrPending = errors.New("optimistic: call pending for key")

// Phase is the per-key state of a Synchronizer.
type Phase int

const (
	Idle Phase = iota
	Pending
	Settled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Snapshot is the locally displayed state of one key.
type Snapshot struct {
	Active bool
	Count  int
}

// Apply returns the toggled snapshot: membership flips and the count moves
// by one in the same direction, never below zero.
func (s Snapshot) Apply() Snapshot {
	if s.Active {
		return Snapshot{Active: false, Count: max(s.Count-1, 0)}
	}
	return Snapshot{Active: true, Count: s.Count + 1}
}

// Effect computes the optimistic state from the current one.
type Effect func(Snapshot) Snapshot

// Call performs the server operation for a toggle.
type Call func(ctx context.Context) error

// Outcome reports how a toggle settled.
type Outcome[K comparable] struct {
	Key K
	// State is the key's state after settling.
	State Snapshot
	// Err is the call's error, nil on success.
	Err error
	// RolledBack is true when State was restored from the snapshot.
	RolledBack bool
	// Adopted is true when a Reconciler replaced the restored state.
	Adopted bool
}

// Reconciler may replace the restored snapshot after a failure, e.g. to
// adopt server truth revealed by the error. It runs under the same lock as
// the rollback, so no toggle can observe the intermediate state.
type Reconciler func(restored Snapshot, err error) (Snapshot, bool)

type entry struct {
	phase    Phase
	state    Snapshot
	snapshot Snapshot
}

// Synchronizer tracks optimistic state for a set of keys.
// The zero value is not usable; call New.
type Synchronizer[K comparable] struct {
	mu        sync.Mutex
	entries   map[K]*entry
	reconcile Reconciler
}

// Option configures a Synchronizer.
type Option func(*options)

type options struct {
	reconcile Reconciler
}

// WithReconciler installs r for failed calls.
func WithReconciler(r Reconciler) Option {
	return func(o *options) { o.reconcile = r }
}

// New returns an empty Synchronizer.
func New[K comparable](opts ...Option) *Synchronizer[K] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Synchronizer[K]{entries: make(map[K]*entry), reconcile: o.reconcile}
}

func (s *Synchronizer[K]) get(key K) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	return e
}

// Seed sets the displayed state of key, typically from a server read. It
// returns ErrPending if a call is in flight for key.
func (s *Synchronizer[K]) Seed(key K, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(key)
	if e.phase == Pending {
		return ErrPending
	}
	e.state = snap
	return nil
}

// State returns the displayed state of key.
func (s *Synchronizer[K]) State(key K) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e.state
	}
	return Snapshot{}
}

// Phase returns the lifecycle phase of key.
func (s *Synchronizer[K]) Phase(key K) Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e.phase
	}
	return Idle
}

// Pending reports whether key has a call in flight.
func (s *Synchronizer[K]) Pending(key K) bool { return s.Phase(key) == Pending }

// Toggle applies Snapshot.Apply to key and dispatches call.
func (s *Synchronizer[K]) Toggle(ctx context.Context, key K, call Call) (<-chan Outcome[K], error) {
	return s.Mutate(ctx, key, Snapshot.Apply, call)
}

// Mutate applies effect to key synchronously, then runs call on a new
// goroutine. The returned channel receives exactly one Outcome and is then
// closed. If key is pending, nothing changes and ErrPending is returned.
func (s *Synchronizer[K]) Mutate(ctx context.Context, key K, effect Effect, call Call) (<-chan Outcome[K], error) {
	s.mu.Lock()
	e := s.get(key)
	if e.phase == Pending {
		s.mu.Unlock()
		return nil, ErrPending
	}
	e.snapshot = e.state
	e.state = effect(e.state)
	e.phase = Pending
	s.mu.Unlock()

	out := make(chan Outcome[K], 1)
	go func() {
		defer close(out)
		err := runCall(ctx, call)
		out <- s.settle(key, err)
	}()
	return out, nil
}

// runCall converts a panicking call into an error so the key always settles.
func runCall(ctx context.Context, call Call) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("optimistic: call panicked")
		}
	}()
	return call(ctx)
}

func (s *Synchronizer[K]) settle(key K, err error) Outcome[K] {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(key)
	e.phase = Settled
	o := Outcome[K]{Key: key, Err: err}
	if err != nil {
		e.state = e.snapshot
		o.RolledBack = true
		if s.reconcile != nil {
			if next, ok := s.reconcile(e.state, err); ok {
				e.state = next
				o.Adopted = true
			}
		}
	}
	o.State = e.state
	return o
}
