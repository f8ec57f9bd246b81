package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging match-session events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

// MemoryLogger is safe for concurrent use; the transport read loop and the
// session log to the same instance.
type MemoryLogger struct {
	mu     sync.Mutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

// Events returns a snapshot of everything logged so far.
func (l *MemoryLogger) Events() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]GameEvent, len(l.events))
	copy(out, l.events)
	return out
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	role := e.Role
	if role == "" {
		role = "-"
	}
	// Pad role to 8 chars for alignment
	for len(role) < 8 {
		role += " "
	}
	return fmt.Sprintf("%s %-16s | %s", role, e.Type.String(), e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewMatchStartEvent(roomID, firstAttack string) GameEvent {
	return GameEvent{
		Type:    EventMatchStart,
		Details: fmt.Sprintf("match started in room %s (first attack: %s)", roomID, firstAttack),
	}
}

func NewPhaseChangeEvent(phase string) GameEvent {
	return GameEvent{
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("phase → %s", phase),
	}
}

func NewTurnSwitchEvent(turnOwner string) GameEvent {
	return GameEvent{
		Role:    turnOwner,
		Type:    EventTurnSwitch,
		Details: fmt.Sprintf("turn passes to %s", turnOwner),
	}
}

func NewTimerExpiredEvent(name string) GameEvent {
	return GameEvent{
		Type:    EventTimerExpired,
		Details: fmt.Sprintf("%s timer expired", name),
	}
}

func NewPlayCardEvent(role, cardName string, cost int) GameEvent {
	return GameEvent{
		Role:    role,
		Type:    EventPlayCard,
		Details: fmt.Sprintf("%s plays %s (cost %d)", role, cardName, cost),
	}
}

func NewCovertActionEvent(role, action string) GameEvent {
	return GameEvent{
		Role:    role,
		Type:    EventCovertAction,
		Details: fmt.Sprintf("%s commits covert action %q", role, action),
	}
}

func NewOpponentStepEvent(detail string) GameEvent {
	return GameEvent{
		Role:    "opponent",
		Type:    EventOpponentStep,
		Details: detail,
	}
}

func NewAccuseSuccessEvent(accuser, action string) GameEvent {
	return GameEvent{
		Role:    accuser,
		Type:    EventAccuseSuccess,
		Details: fmt.Sprintf("%s called out %q, penalty to the accused", accuser, action),
	}
}

func NewAccuseFailedEvent(accuser string) GameEvent {
	return GameEvent{
		Role:    accuser,
		Type:    EventAccuseFailed,
		Details: fmt.Sprintf("%s accused with no matching entry, penalty to the accuser", accuser),
	}
}

func NewMulliganDoneEvent(role string, swapped int) GameEvent {
	return GameEvent{
		Role:    role,
		Type:    EventMulliganDone,
		Details: fmt.Sprintf("%s mulliganed %d card(s)", role, swapped),
	}
}

func NewGameOverEvent(winner string) GameEvent {
	return GameEvent{
		Role:    winner,
		Type:    EventGameOver,
		Details: fmt.Sprintf("game over, winner: %s", winner),
	}
}

func NewTransportOpenEvent(url string) GameEvent {
	return GameEvent{
		Type:    EventTransportOpen,
		Details: fmt.Sprintf("connected to %s", url),
	}
}

func NewTransportMessageEvent(msgType string) GameEvent {
	return GameEvent{
		Type:    EventTransportMessage,
		Details: fmt.Sprintf("received %q frame", msgType),
	}
}

func NewTransportClosedEvent(reason string) GameEvent {
	return GameEvent{
		Type:    EventTransportClosed,
		Details: fmt.Sprintf("connection closed: %s", reason),
	}
}

func NewProtocolErrorEvent(detail string) GameEvent {
	return GameEvent{
		Type:    EventProtocolError,
		Details: detail,
	}
}

func NewSystemMessageEvent(message string) GameEvent {
	return GameEvent{
		Type:    EventSystemMessage,
		Details: message,
	}
}
