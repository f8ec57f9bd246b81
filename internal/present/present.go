package present

import (
	"ikasama/internal/match"
)

// Hooks is the surface the session pushes presentation changes through.
// The renderer implements it; everything here is pure projection, no game
// logic and no writes back into the session.
type Hooks interface {
	// StateChanged delivers the latest snapshot after every committed
	// mutation or authoritative replace.
	StateChanged(s *match.State, myRole match.Role)

	// PhaseChanged fires on session phase transitions (title, connecting,
	// mulligan, battle, game over).
	PhaseChanged(phase string)

	// ClockChanged delivers the per-second countdowns. A clock that is not
	// running is reported as -1.
	ClockChanged(turn, mulligan, accuse int)

	// SystemMessage shows transient status text from the server or the
	// offline simulator.
	SystemMessage(text string)

	// AccuseOpened shows the accusation list, newest first. AccuseClosed
	// dismisses it, whether by selection, cancel, or timeout.
	AccuseOpened(entries []match.CheatEntry)
	AccuseClosed()

	// OpponentCursor mirrors the remote seat's cursor in normalized room
	// coordinates.
	OpponentCursor(x, y float64)

	// Disconnected reports transport loss. The match outcome, if already
	// resolved, stands.
	Disconnected(reason string)
}

// NopHooks implements Hooks with no-ops. Embed it to implement only the
// callbacks a front end cares about.
type NopHooks struct{}

func (NopHooks) StateChanged(*match.State, match.Role) {}
func (NopHooks) PhaseChanged(string) {}
func (NopHooks) ClockChanged(int, int, int) {}
func (NopHooks) SystemMessage(string) {}
func (NopHooks) AccuseOpened([]match.CheatEntry) {}
func (NopHooks) AccuseClosed() {}
func (NopHooks) OpponentCursor(float64, float64) {}
func (NopHooks) Disconnected(string) {}

var _ Hooks = NopHooks{}
