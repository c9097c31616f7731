package models

import (
	"time"
)

// EventType classifies a draft notification event
type EventType string

const (
	// EventTurnStarted indicates a participant has come on the clock
	EventTurnStarted EventType = "turn_started"

	// EventTurnWarning indicates a participant is close to being timed out
	EventTurnWarning EventType = "turn_warning"

	// EventPickCommitted indicates a queued pick was committed
	EventPickCommitted EventType = "pick_committed"

	// EventAutoPick indicates the timeout policy picked on a
	// participant's behalf
	EventAutoPick EventType = "auto_pick"

	// EventTurnSkipped indicates an admin skip advanced the turn with no
	// commit
	EventTurnSkipped EventType = "turn_skipped"

	// EventRoundComplete indicates a round finished
	EventRoundComplete EventType = "round_complete"

	// EventDraftComplete indicates all rounds finished
	EventDraftComplete EventType = "draft_complete"
)

// DraftEvent is a notification emitted by the turn-loop worker. The core
// only decides whether an event is worth emitting; delivery belongs to a
// separate consumer reading off the notify channel.
type DraftEvent struct {
	// ID is a unique identifier for the event
	ID string

	// Type classifies the event
	Type EventType

	// Session is the draft session name the event belongs to
	Session string

	// ChannelID is the communication channel the session talks in;
	// empty means nothing should be delivered
	ChannelID string

	// ParticipantID is the affected participant, if any
	ParticipantID string

	// ParticipantName is the affected participant's display name
	ParticipantName string

	// Team is the committed team number, if any
	Team string

	// Round is the 1-based round the event happened in
	Round int

	// Position is the 1-based draft position on the clock
	Position int

	// Timestamp is when the event was emitted
	Timestamp time.Time
}
