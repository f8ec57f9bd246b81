package log

import "time"

// EventType enumerates all observable match-session events.
type EventType int

const (
	EventMatchStart EventType = iota
	EventPhaseChange
	EventTurnSwitch
	EventTimerExpired
	EventPlayCard
	EventCovertAction
	EventOpponentStep
	EventAccuseSuccess
	EventAccuseFailed
	EventMulliganDone
	EventGameOver
	EventTransportOpen
	EventTransportMessage
	EventTransportClosed
	EventProtocolError
	EventSystemMessage
)

func (e EventType) String() string {
	switch e {
	case EventMatchStart:
		return "MatchStart"
	case EventPhaseChange:
		return "PhaseChange"
	case EventTurnSwitch:
		return "TurnSwitch"
	case EventTimerExpired:
		return "TimerExpired"
	case EventPlayCard:
		return "PlayCard"
	case EventCovertAction:
		return "CovertAction"
	case EventOpponentStep:
		return "OpponentStep"
	case EventAccuseSuccess:
		return "AccuseSuccess"
	case EventAccuseFailed:
		return "AccuseFailed"
	case EventMulliganDone:
		return "MulliganDone"
	case EventGameOver:
		return "GameOver"
	case EventTransportOpen:
		return "TransportOpen"
	case EventTransportMessage:
		return "TransportMessage"
	case EventTransportClosed:
		return "TransportClosed"
	case EventProtocolError:
		return "ProtocolError"
	case EventSystemMessage:
		return "SystemMessage"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match session.
type GameEvent struct {
	Seq     int       // monotonic sequence number, assigned by the logger
	At      time.Time // event time
	Role    string    // acting side ("player", "opponent", or "")
	Type    EventType // event type
	Details string    // human-readable detail string
}
