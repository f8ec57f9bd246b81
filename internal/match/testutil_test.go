package match

import (
	"math/rand"
	"time"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
)

// battleState returns a started match with the mulligan phase already
// closed, so ops tests begin in battle with the player on turn.
func battleState(rules config.Rules) *State {
	s := New("room-test", rules, catalog.Default())
	s.Start(RolePlayer, rules)
	s.EndMulligan(rules)
	return s
}

func fixedNow() time.Time {
	return time.Unix(1_700_000_000, 0)
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
