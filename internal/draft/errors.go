package draft

import "errors"

// Define errors
var (
	ErrTeamNotAvailable    = errors.New("team is not available")
	ErrTeamExists          = errors.New("team already exists")
	ErrTeamNotFound        = errors.New("team not found")
	ErrPoolEmpty           = errors.New("no teams left to pick")
	ErrAlreadySeeded       = errors.New("team pool already seeded")
	ErrParticipantExists   = errors.New("participant already registered")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrSessionFull         = errors.New("participant limit reached")
	ErrSessionExists       = errors.New("draft session already exists")
	ErrSessionNotFound     = errors.New("draft session not found")
	ErrOrderFinalized      = errors.New("draft order already finalized")
	ErrOrderNotFinalized   = errors.New("draft order not finalized")
	ErrNoParticipants      = errors.New("no participants registered")
	ErrNoTeams             = errors.New("no teams in the pool")
	ErrDraftComplete       = errors.New("draft already complete")
	ErrLatePickNotAllowed  = errors.New("late picks are not allowed in this draft")
	ErrRoundSlotFilled     = errors.New("round slot already has a pick")
	ErrRoundNotReached     = errors.New("round has not been reached yet")
)
