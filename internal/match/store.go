package match

import (
	"encoding/json"
	"sync"
)

// Store is the single slot holding the current match state. All reads and
// writes go through it; every mutation fires the change hook so presentation
// can re-project without polling.
type Store struct {
	mu       sync.Mutex
	state    *State
	onChange func(*State)
}

func NewStore(initial *State) *Store {
	return &Store{state: initial}
}

// OnChange installs the notification hook. The hook runs with the store
// locked; it must treat the state as read-only and must not call back into
// the store.
func (st *Store) OnChange(fn func(*State)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.onChange = fn
}

// Update runs fn against the current state under the lock. fn reports
// whether it mutated anything; only then does the change hook fire.
func (st *Store) Update(fn func(*State) bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.state == nil {
		return
	}
	if fn(st.state) {
		st.notify()
	}
}

// Replace swaps in a whole new state, as when an authoritative snapshot
// arrives from the server.
func (st *Store) Replace(next *State) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = next
	st.notify()
}

// Read runs fn against the current state under the lock without firing the
// hook. fn must not retain references past its return.
func (st *Store) Read(fn func(*State)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.state != nil {
		fn(st.state)
	}
}

// Snapshot returns a deep copy of the current state, or nil before the first
// state arrives.
func (st *Store) Snapshot() *State {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.state == nil {
		return nil
	}
	return cloneState(st.state)
}

func (st *Store) notify() {
	if st.onChange != nil {
		st.onChange(st.state)
	}
}

// cloneState copies through the wire shape, which reaches every field the
// store exposes.
func cloneState(s *State) *State {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	var out State
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return &out
}
