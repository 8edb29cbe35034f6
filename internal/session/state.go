package session

import (
	"sync"

	"github.com/campuskit/campusctl/internal/user"
)

// State is the in-memory authentication truth. User is nil until a
// successful sign-in, registration, or hydration from the persisted store.
type State struct {
	User        *user.Record
	AuthChecked bool
	Loading     bool
}

// Authenticated reports whether a user is present
func (s State) Authenticated() bool {
	return s.User != nil
}

// Store is the single owner of session state. Everything else reads it
// through Current or Subscribe and mutates it only through the defined
// actions; none of the actions perform I/O.
type Store struct {
	mu    sync.Mutex
	state State

	nextSubID int
	subs      map[int]func(State)
}

// NewStore creates a store in the initial bootstrap state: no user,
// AuthChecked false.
func NewStore() *Store {
	return &Store{subs: make(map[int]func(State))}
}

// Current returns a snapshot of the state. The user record is copied so
// callers can never alias the store's own value.
func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetUser sets or clears the current user
func (s *Store) SetUser(rec *user.Record) {
	s.mu.Lock()
	if rec == nil {
		s.state.User = nil
	} else {
		copied := *rec
		s.state.User = &copied
	}
	s.notifyLocked()
}

// SetLoading flags an in-flight auth operation
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.state.Loading = loading
	s.notifyLocked()
}

// SetAuthChecked marks startup session hydration as done. The flag is
// monotonic: once true it never reverts, so passing false later is a no-op.
func (s *Store) SetAuthChecked(checked bool) {
	s.mu.Lock()
	if !checked && s.state.AuthChecked {
		s.mu.Unlock()
		return
	}
	s.state.AuthChecked = s.state.AuthChecked || checked
	s.notifyLocked()
}

// Reset clears the user and loading flag. AuthChecked stays true: the
// bootstrap check happened once for this process, logout does not undo it.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state.User = nil
	s.state.Loading = false
	s.notifyLocked()
}

// Subscribe registers fn to run synchronously on every state change and
// returns an unsubscribe function. fn also runs once immediately with the
// current state so late subscribers never miss the present truth.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	fn(snapshot)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshotLocked copies the state; caller holds the lock
func (s *Store) snapshotLocked() State {
	snap := s.state
	if snap.User != nil {
		copied := *snap.User
		snap.User = &copied
	}
	return snap
}

// notifyLocked fans the new state out to subscribers. The lock is released
// before the callbacks run so a subscriber may read Current or dispatch a
// follow-up mutation.
func (s *Store) notifyLocked() {
	snapshot := s.snapshotLocked()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
