package match

import (
	"testing"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
)

func TestStoreUpdateNotifies(t *testing.T) {
	rules := config.Default()
	st := NewStore(battleState(rules))

	var fired int
	st.OnChange(func(s *State) { fired++ })

	st.Update(func(s *State) bool {
		return s.PlayCard(RolePlayer, 0, rules)
	})
	if fired != 1 {
		t.Errorf("hook fired %d times, want 1", fired)
	}

	// A declined mutation must stay silent.
	st.Update(func(s *State) bool {
		return s.PlayCard(RoleOpponent, 0, rules)
	})
	if fired != 1 {
		t.Errorf("hook fired %d times after declined update, want 1", fired)
	}
}

func TestStoreReplaceNotifies(t *testing.T) {
	rules := config.Default()
	st := NewStore(nil)

	var seen *State
	st.OnChange(func(s *State) { seen = s })

	next := New("room-x", rules, catalog.Default())
	st.Replace(next)
	if seen != next {
		t.Error("hook did not observe the replaced state")
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	rules := config.Default()
	st := NewStore(battleState(rules))

	snap := st.Snapshot()
	snap.Player.Hand[0] = 999
	snap.Player.HP = 1

	st.Read(func(s *State) {
		if s.Player.Hand[0] == 999 || s.Player.HP == 1 {
			t.Error("snapshot mutation leaked into the store")
		}
	})
}

func TestStoreNilBeforeFirstState(t *testing.T) {
	st := NewStore(nil)
	if st.Snapshot() != nil {
		t.Error("snapshot of empty store should be nil")
	}
	called := false
	st.Read(func(*State) { called = true })
	st.Update(func(*State) bool { called = true; return true })
	if called {
		t.Error("callbacks ran with no state present")
	}
}
