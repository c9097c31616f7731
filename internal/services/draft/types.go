package draft

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/jnairn/vexdraft/internal/export"
	"github.com/jnairn/vexdraft/internal/models"
	"github.com/jnairn/vexdraft/internal/services/notify"
	sessionRepo "github.com/jnairn/vexdraft/internal/repositories/session"
)

// RosterClient fetches the draftable team pool for an external event
// reference. Implemented by the robotevents client; anything that returns
// team numbers will do.
type RosterClient interface {
	FetchTeamPool(ctx context.Context, ref string) ([]string, error)
}

// Config holds configuration for the draft service
type Config struct {
	// SessionRepo persists session snapshots
	SessionRepo sessionRepo.Repository

	// RosterClient fetches team pools; optional when teams are passed
	// explicitly
	RosterClient RosterClient

	// Notifier receives turn-loop events; optional
	Notifier notify.Service

	// Clock is the time source for turn-loop workers
	Clock clockwork.Clock
}

// Entrant is a user who reacted to the draft announcement
type Entrant struct {
	// ID is the platform-assigned user ID
	ID string

	// Name is the display name
	Name string
}

// CreateDraftInput contains parameters for creating a draft
type CreateDraftInput struct {
	// Name is the unique draft name
	Name string

	// Rounds is the number of rounds to be played
	Rounds int

	// ParticipantCap limits registration; 0 means no cap
	ParticipantCap int

	// RequesterID becomes the draft's admin
	RequesterID string

	// EventRef is the external event (SKU) to fetch the team pool from
	EventRef string

	// Teams seeds the pool directly, bypassing the roster client
	Teams []string

	// AllowLatePick permits skipped participants to pick later
	AllowLatePick bool

	// Seed fixes the shuffle seed; 0 picks one from the clock
	Seed int64
}

// CreateDraftOutput contains the result of creating a draft
type CreateDraftOutput struct {
	// Name is the created draft's name
	Name string

	// TeamCount is how many teams were loaded into the pool
	TeamCount int
}

// AnnounceDraftInput contains parameters for recording an announcement
type AnnounceDraftInput struct {
	// Name is the draft name
	Name string

	// RequesterID must be the draft admin
	RequesterID string

	// MessageID is the announcement message
	MessageID string

	// Emoji is the reaction emoji used to enter
	Emoji string

	// ChannelID is where the announcement was posted
	ChannelID string
}

// AnnounceDraftOutput contains the result of recording an announcement
type AnnounceDraftOutput struct {
	Success bool
}

// SetupDraftInput contains parameters for registering entrants
type SetupDraftInput struct {
	// Name is the draft name
	Name string

	// RequesterID must be the draft admin
	RequesterID string

	// Entrants are the users who reacted to the announcement
	Entrants []Entrant
}

// SetupDraftOutput contains the result of registering entrants
type SetupDraftOutput struct {
	// Registered is how many entrants were newly registered
	Registered int
}

// StartDraftInput contains parameters for starting the turn loop
type StartDraftInput struct {
	// Name is the draft name
	Name string

	// RequesterID must be the draft admin
	RequesterID string

	// ChannelID is the channel the running draft talks in
	ChannelID string

	// TimeLimitMin is the per-turn limit in minutes; 0 disables timeouts
	TimeLimitMin int

	// WarnBeforeMin is how many minutes before the limit to warn
	WarnBeforeMin int

	// Downtime suspends timeout-skipping during these hours
	Downtime *models.DowntimeWindow
}

// ParticipantPosition pairs a participant with their assigned position
type ParticipantPosition struct {
	Position int
	ID       string
	Name     string
}

// StartDraftOutput contains the finalized draft order
type StartDraftOutput struct {
	// Order is the shuffled draft order, position 1 first
	Order []ParticipantPosition

	// PicksPerTeam is the computed pick allocation
	PicksPerTeam int
}

// PickInput contains parameters for reserving a single pick
type PickInput struct {
	// Name is the draft name
	Name string

	// ParticipantID is the reserving participant
	ParticipantID string

	// Team is the requested team number
	Team string
}

// PickOutput contains the result of reserving a single pick
type PickOutput struct {
	// Installed is false when the team was not available
	Installed bool
}

// ReservePicksInput contains parameters for reserving multiple picks
type ReservePicksInput struct {
	// Name is the draft name
	Name string

	// ParticipantID is the reserving participant
	ParticipantID string

	// Teams are the requested team numbers, at most four are kept
	Teams []string

	// DoublePick reserves multi-pick-per-turn semantics
	DoublePick bool
}

// ReservePicksOutput contains the result of reserving multiple picks
type ReservePicksOutput struct {
	// Installed is true iff at least one team was reserved
	Installed bool

	// Queue is the resulting reservation queue
	Queue []string
}

// ClearPicksInput contains parameters for clearing reservations
type ClearPicksInput struct {
	Name          string
	ParticipantID string
}

// ClearPicksOutput contains the result of clearing reservations
type ClearPicksOutput struct {
	Success bool
}

// RandomPickInput contains parameters for a random reservation
type RandomPickInput struct {
	Name          string
	ParticipantID string
}

// RandomPickOutput contains the chosen team
type RandomPickOutput struct {
	Team string
}

// SkipTurnInput contains parameters for skipping the current turn
type SkipTurnInput struct {
	// Name is the draft name
	Name string

	// RequesterID must be the draft admin
	RequesterID string
}

// SkipTurnOutput contains the result of requesting a skip
type SkipTurnOutput struct {
	Success bool
}

// LatePickInput contains parameters for back-filling a skipped slot
type LatePickInput struct {
	Name          string
	ParticipantID string
	Round         int
	Team          string
}

// LatePickOutput contains the result of a late pick
type LatePickOutput struct {
	Success bool
}

// AddTeamInput contains parameters for adding a team
type AddTeamInput struct {
	Name        string
	RequesterID string
	Team        string
}

// AddTeamOutput contains the result of adding a team
type AddTeamOutput struct {
	Success bool
}

// RemoveTeamInput contains parameters for removing a team
type RemoveTeamInput struct {
	Name        string
	RequesterID string
	Team        string
}

// RemoveTeamOutput contains the result of removing a team
type RemoveTeamOutput struct {
	Success bool
}

// DraftStatusInput contains parameters for a status query
type DraftStatusInput struct {
	Name string
}

// DraftStatusOutput summarizes a session's current state
type DraftStatusOutput struct {
	Name           string
	Status         models.SessionStatus
	Round          int
	Position       int
	OnClockID      string
	OnClockName    string
	QueueLength    int
	TeamsLeft      int
	PicksRemaining int
	FilledSlots    int
	TotalSlots     int
}

// ExportResultsInput contains parameters for exporting results
type ExportResultsInput struct {
	Name string
}

// ExportResultsOutput contains the rendered results
type ExportResultsOutput struct {
	// Rows is the results table, one row per participant
	Rows []export.Row

	// CSV is the rendered artifact
	CSV []byte

	// Filename is the suggested artifact name
	Filename string
}

// RestoreAllOutput contains the result of restoring persisted sessions
type RestoreAllOutput struct {
	// Restored is how many sessions were loaded into the directory
	Restored int

	// Resumed is how many turn loops were restarted
	Resumed int
}
