package session

import "sync"

// Store is the single source of truth for the local session belief.
// It is the only writer of State; views hold read access plus the two
// whole-object mutations below. Mutation and notification run under a
// single-writer discipline, so there is no partial-update window for
// readers to observe.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  map[int]func(State)
	next  int
}

// NewStore returns a fresh store in the anonymous state.
func NewStore() *Store {
	return &Store{
		subs: map[int]func(State){},
	}
}

// Current returns a snapshot of the session state. It never blocks on
// in-flight remote calls and never fails.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set replaces the held user and notifies subscribers. Set(nil) is
// equivalent to Clear. It always succeeds.
func (s *Store) Set(u *User) {
	s.mu.Lock()
	s.state = Authenticated(u)
	state, subs := s.state, s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, state)
}

// Clear resets the store to the anonymous state. Clearing an already
// anonymous store is a no-op: state is unchanged and subscribers are
// not re-notified, since they only hear transitions.
func (s *Store) Clear() {
	s.mu.Lock()
	if !s.state.IsAuthenticated() {
		s.mu.Unlock()
		return
	}
	s.state = Anonymous()
	state, subs := s.state, s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, state)
}

// Subscribe registers fn to run after every state transition, with the
// new state. The returned cancel is idempotent.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshotSubs copies the subscriber set so callbacks run outside the
// lock; a callback may read Current or cancel itself. Callers must
// hold mu.
func (s *Store) snapshotSubs() []func(State) {
	out := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(State), state State) {
	for _, fn := range subs {
		fn(state)
	}
}
