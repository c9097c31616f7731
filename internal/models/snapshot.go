package models

import (
	"time"
)

// SessionSnapshot is the persisted form of a draft session, sufficient to
// resume an interrupted draft after a process restart. The leading fields
// mirror the original flat session row (empty string denotes absent); the
// rest carry the full participant and team state so queues, committed picks
// and remaining-pick counters survive a restart.
type SessionSnapshot struct {
	// Name is the session's unique key
	Name string `json:"name"`

	// ParticipantCap limits registration; 0 means no cap
	ParticipantCap int `json:"participant_cap"`

	// RoundLimit is the number of rounds to be played
	RoundLimit int `json:"round_limit"`

	// AnnouncementID is the message ID of the registration announcement
	AnnouncementID string `json:"announcement_id"`

	// Emoji is the reaction emoji used to enter the draft
	Emoji string `json:"emoji"`

	// AnnounceChannelID is where the announcement was posted
	AnnounceChannelID string `json:"announce_channel_id"`

	// RosterRef identifies the external event the team pool came from
	RosterRef string `json:"roster_reference"`

	// RandomSeed drives the draft-order shuffle and random picks;
	// persisting it makes the shuffle reproducible across restarts
	RandomSeed int64 `json:"random_seed"`

	// CurrentPick is the absolute pick index the draft is on
	CurrentPick int `json:"current_position"`

	// ChannelID is the channel the running draft talks in
	ChannelID string `json:"channel_id"`

	// AdminID is the user who created the draft
	AdminID string `json:"admin_id"`

	// Status is the session lifecycle state
	Status SessionStatus `json:"status"`

	// Finalized records whether the draft order has been locked in
	Finalized bool `json:"finalized"`

	// TurnLimitMin is the per-turn time limit in minutes; 0 disables it
	TurnLimitMin int `json:"turn_limit_min"`

	// WarnBeforeMin is how many minutes before the limit the one-time
	// warning fires
	WarnBeforeMin int `json:"warn_before_min"`

	// Downtime suspends timeout-skipping during these hours
	Downtime *DowntimeWindow `json:"downtime,omitempty"`

	// AllowLatePick permits skipped participants to fill their empty
	// round slot later
	AllowLatePick bool `json:"allow_late_pick"`

	// PollSeconds is the worker's poll interval
	PollSeconds int `json:"poll_seconds"`

	// PicksEach is the per-team pick allocation computed at finalization
	PicksEach int `json:"picks_each"`

	// TeamPool holds the seeded team numbers before finalization
	TeamPool []string `json:"team_pool,omitempty"`

	// Teams is the inventory ledger state after finalization
	Teams []*Team `json:"teams,omitempty"`

	// Participants is the full registry state, queues and picks included
	Participants []*Participant `json:"participants,omitempty"`

	// SavedAt is when the snapshot was taken
	SavedAt time.Time `json:"saved_at"`
}
