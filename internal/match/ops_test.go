package match

import (
	"testing"
	"time"

	"ikasama/internal/config"
)

// TestPlayCard: legal play deducts mana and moves the card hand -> field.
func TestPlayCard(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)

	id := s.Player.Hand[0]
	cost := s.Card(id).Cost
	manaBefore := s.Player.Mana

	if !s.PlayCard(RolePlayer, 0, rules) {
		t.Fatal("expected play to commit")
	}
	if s.Player.Mana != manaBefore-cost {
		t.Errorf("mana = %d, want %d", s.Player.Mana, manaBefore-cost)
	}
	if len(s.Player.Hand) != rules.OpeningHand-1 {
		t.Errorf("hand size = %d, want %d", len(s.Player.Hand), rules.OpeningHand-1)
	}
	if len(s.Player.Field) != 1 || s.Player.Field[0] != id {
		t.Errorf("field = %v, want [%d]", s.Player.Field, id)
	}
}

// TestPlayCardRejections: wrong turn, short mana, and bad index all decline
// without touching the state.
func TestPlayCardRejections(t *testing.T) {
	rules := config.Default()

	s := battleState(rules)
	if s.PlayCard(RoleOpponent, 0, rules) {
		t.Error("play off-turn should be declined")
	}

	s = battleState(rules)
	s.Player.Mana = 0
	before := len(s.Player.Hand)
	if s.PlayCard(RolePlayer, 0, rules) {
		t.Error("play without mana should be declined")
	}
	if len(s.Player.Hand) != before {
		t.Error("declined play must not change the hand")
	}

	s = battleState(rules)
	if s.PlayCard(RolePlayer, len(s.Player.Hand), rules) {
		t.Error("out-of-range index should be declined")
	}
	if s.PlayCard(RolePlayer, -1, rules) {
		t.Error("negative index should be declined")
	}
}

// TestCovertActionsIgnoreTurn: sneak moves work off-turn and always land in
// the cheat log.
func TestCovertActionsIgnoreTurn(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)
	now := fixedNow()

	// Opponent's covert actions during the player's turn.
	if !s.SneakToGrave(RoleOpponent, 0, now, rules) {
		t.Fatal("sneak-grave off-turn should commit")
	}
	if len(s.Opponent.Grave) != 1 {
		t.Errorf("grave = %v, want one card", s.Opponent.Grave)
	}

	if !s.SneakDiscard(RoleOpponent, 0, now, rules) {
		t.Fatal("sneak-discard off-turn should commit")
	}
	if len(s.Opponent.Hand) != rules.OpeningHand-2 {
		t.Errorf("hand size = %d after two covert removals", len(s.Opponent.Hand))
	}

	if len(s.CheatLog) != 2 {
		t.Fatalf("cheat log has %d entries, want 2", len(s.CheatLog))
	}
	if s.CheatLog[0].Action != ActionSneakGrave || s.CheatLog[1].Action != ActionSneakDiscard {
		t.Errorf("log actions = %s, %s", s.CheatLog[0].Action, s.CheatLog[1].Action)
	}
	for _, e := range s.CheatLog {
		if e.By != RoleOpponent {
			t.Errorf("entry attributed to %s, want opponent", e.By)
		}
	}
}

// TestDestroyOpponentField removes exactly the indexed enemy card.
func TestDestroyOpponentField(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)
	s.Opponent.Field = []int{1, 2, 3}

	if !s.DestroyOpponentField(RolePlayer, 1, fixedNow(), rules) {
		t.Fatal("expected destroy to commit")
	}
	if len(s.Opponent.Field) != 2 || s.Opponent.Field[0] != 1 || s.Opponent.Field[1] != 3 {
		t.Errorf("field = %v, want [1 3]", s.Opponent.Field)
	}
	if len(s.CheatLog) != 1 || s.CheatLog[0].Action != ActionDestroyOpponentDemo {
		t.Errorf("cheat log = %v", s.CheatLog)
	}
}

// TestAccuseCorrect: matching a recent entry penalizes the accused and logs
// the accusation itself.
func TestAccuseCorrect(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)
	now := fixedNow()

	s.SneakToGrave(RoleOpponent, 0, now, rules)
	target := s.RecentCheatsBy(RoleOpponent, now, rules)[0]

	if !s.Accuse(RolePlayer, &target, now.Add(3*time.Second), rules) {
		t.Fatal("expected accusation to stick")
	}
	if s.Opponent.Penalty != 1 {
		t.Errorf("accused penalty = %d, want 1", s.Opponent.Penalty)
	}
	if s.Player.Penalty != 0 {
		t.Errorf("accuser penalty = %d, want 0", s.Player.Penalty)
	}
	last := s.CheatLog[len(s.CheatLog)-1]
	if last.Action != ActionAccuse || last.By != RolePlayer {
		t.Errorf("last log entry = %+v, want accuse by player", last)
	}
}

// TestAccuseFalse: nil target and expired target both penalize the accuser.
func TestAccuseFalse(t *testing.T) {
	rules := config.Default()

	s := battleState(rules)
	if s.Accuse(RolePlayer, nil, fixedNow(), rules) {
		t.Error("nil target should not stick")
	}
	if s.Player.Penalty != 1 {
		t.Errorf("accuser penalty = %d, want 1", s.Player.Penalty)
	}

	s = battleState(rules)
	now := fixedNow()
	s.SneakToGrave(RoleOpponent, 0, now, rules)
	target := s.RecentCheatsBy(RoleOpponent, now, rules)[0]
	late := now.Add(time.Duration(rules.AccuseSeconds+1) * time.Second)
	if s.Accuse(RolePlayer, &target, late, rules) {
		t.Error("expired target should not stick")
	}
	if s.Player.Penalty != 1 || s.Opponent.Penalty != 0 {
		t.Errorf("penalties = %d/%d, want 1/0", s.Player.Penalty, s.Opponent.Penalty)
	}
}

// TestAccuseWindowBoundary: an entry at exactly the window edge still counts.
func TestAccuseWindowBoundary(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)
	now := fixedNow()

	s.SneakDiscard(RoleOpponent, 0, now, rules)
	edge := now.Add(time.Duration(rules.AccuseSeconds) * time.Second)

	recent := s.RecentCheatsBy(RoleOpponent, edge, rules)
	if len(recent) != 1 {
		t.Fatalf("entry at window edge excluded, recent = %v", recent)
	}
	if !s.Accuse(RolePlayer, &recent[0], edge, rules) {
		t.Error("accusation at window edge should stick")
	}
}

// TestRecentCheatsOrdering: newest first, accuse entries skipped, list cap
// honored.
func TestRecentCheatsOrdering(t *testing.T) {
	rules := config.Default()
	rules.AccuseListCap = 2
	s := battleState(rules)
	now := fixedNow()
	s.Opponent.Hand = []int{1, 1, 1, 1}

	s.SneakToGrave(RoleOpponent, 0, now, rules)
	s.SneakDiscard(RoleOpponent, 0, now.Add(time.Second), rules)
	s.SneakToGrave(RoleOpponent, 0, now.Add(2*time.Second), rules)
	s.AppendCheat(RolePlayer, ActionAccuse, nil, now.Add(3*time.Second), rules)

	recent := s.RecentCheatsBy(RoleOpponent, now.Add(3*time.Second), rules)
	if len(recent) != 2 {
		t.Fatalf("recent length = %d, want cap 2", len(recent))
	}
	if recent[0].TS < recent[1].TS {
		t.Error("recent not ordered newest first")
	}
	if recent[0].Action != ActionSneakGrave {
		t.Errorf("newest action = %s, want sneak-grave", recent[0].Action)
	}
	if got := s.RecentCheatsBy(RolePlayer, now.Add(3*time.Second), rules); len(got) != 0 {
		t.Errorf("accuse entries must not be accusable, got %v", got)
	}
}

// TestCheatLogCap: oldest entries evict first.
func TestCheatLogCap(t *testing.T) {
	rules := config.Default()
	rules.CheatLogCap = 3
	s := battleState(rules)
	now := fixedNow()

	for i := 0; i < 5; i++ {
		s.AppendCheat(RoleOpponent, ActionSneakDiscard, map[string]any{"n": i}, now.Add(time.Duration(i)*time.Second), rules)
	}
	if len(s.CheatLog) != 3 {
		t.Fatalf("log length = %d, want 3", len(s.CheatLog))
	}
	if s.CheatLog[0].Payload["n"] != 2 {
		t.Errorf("oldest surviving entry = %v, want n=2", s.CheatLog[0].Payload)
	}
}

// TestGameOverByHP: hp at zero ends the game and freezes the winner.
func TestGameOverByHP(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)

	s.Player.HP = 0
	s.CheckGameOver(rules)
	if !s.IsGameOver || s.Winner != RoleOpponent {
		t.Fatalf("game over = %v winner = %s", s.IsGameOver, s.Winner)
	}

	// Once over, nothing moves the result.
	s.Opponent.HP = -5
	s.CheckGameOver(rules)
	if s.Winner != RoleOpponent {
		t.Errorf("winner changed after game over: %s", s.Winner)
	}
	if s.PlayCard(RolePlayer, 0, rules) {
		t.Error("play after game over should be declined")
	}
	before := s.CurrentTurn
	s.SwitchTurn(rules)
	if s.CurrentTurn != before {
		t.Error("turn switched after game over")
	}
}

// TestGameOverByPenalty: reaching the penalty cap loses the match.
func TestGameOverByPenalty(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)

	for i := 0; i < rules.MaxPenalty; i++ {
		s.Accuse(RolePlayer, nil, fixedNow(), rules)
	}
	if !s.IsGameOver {
		t.Fatal("expected game over at penalty cap")
	}
	if s.Winner != RoleOpponent {
		t.Errorf("winner = %s, want opponent", s.Winner)
	}
}

// TestSwitchTurnResetsClock.
func TestSwitchTurnResetsClock(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)
	s.Timer = 1

	s.SwitchTurn(rules)
	if s.CurrentTurn != RoleOpponent {
		t.Errorf("turn = %s, want opponent", s.CurrentTurn)
	}
	if s.Timer != rules.TurnSeconds {
		t.Errorf("timer = %d, want %d", s.Timer, rules.TurnSeconds)
	}
}
