package draft

import (
	"github.com/jnairn/vexdraft/internal/models"
)

// TurnState describes the outcome of a resolution attempt
type TurnState string

const (
	// TurnStateWaiting indicates the on-the-clock participant has no
	// consumable queue head
	TurnStateWaiting TurnState = "waiting_for_queue"

	// TurnStateResolving indicates a queued pick was committed
	TurnStateResolving TurnState = "resolving"
)

// ResolveResult reports the outcome of resolving one turn
type ResolveResult struct {
	// State is the turn outcome
	State TurnState

	// Participant is the participant whose turn was resolved
	Participant *models.Participant

	// Team is the committed team number when State is resolving
	Team string

	// Round is the 1-based round the resolution happened in
	Round int
}

// PickCommit describes a committed pick together with the turn-advance
// flags the worker needs for notifications
type PickCommit struct {
	ParticipantID   string
	ParticipantName string
	Team            string
	Round           int
	Position        int
	RoundComplete   bool
	DraftComplete   bool
}

// TurnAdvance describes a turn advanced without a commit
type TurnAdvance struct {
	ParticipantID   string
	ParticipantName string
	Round           int
	Position        int
	RoundComplete   bool
	DraftComplete   bool
}

// ResolveTurn attempts to commit the queue head of the participant at the
// given position for the given round. Stale queue entries (teams removed
// or exhausted since they were reserved) are dropped and the queue
// compacted until a valid head is found, so a dead reservation can never
// deadlock a turn. On success the ledger decrement and the round-slot
// write happen under the same lock hold, as one logical operation.
func (s *Session) ResolveTurn(position, round int) (*ResolveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveTurn(position, round)
}

func (s *Session) resolveTurn(position, round int) (*ResolveResult, error) {
	if !s.finalized {
		return nil, ErrOrderNotFinalized
	}
	if round < 1 || round > s.roundLimit {
		return nil, ErrRoundNotReached
	}

	participant, err := s.roster.ByPosition(position)
	if err != nil {
		return nil, err
	}

	for {
		team, ok := participant.QueueHead()
		if !ok {
			return &ResolveResult{
				State:       TurnStateWaiting,
				Participant: participant,
				Round:       round,
			}, nil
		}

		if !s.ledger.IsAvailable(team) {
			// Stale reservation; drop it and try the next one.
			participant.DropQueueHead()
			continue
		}

		if err := s.ledger.Decrement(team); err != nil {
			return nil, err
		}
		participant.Picks[round-1] = team
		participant.DropQueueHead()
		participant.DoublePick = false

		return &ResolveResult{
			State:       TurnStateResolving,
			Participant: participant,
			Team:        team,
			Round:       round,
		}, nil
	}
}

// TryResolveCurrent resolves the turn the draft is currently on and, on
// success, advances to the next pick. Returns nil when the turn is not
// resolvable yet.
func (s *Session) TryResolveCurrent() (*PickCommit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.IsComplete() {
		return nil, ErrDraftComplete
	}
	if !s.finalized {
		return nil, ErrOrderNotFinalized
	}

	round, position := TurnAt(s.currentPick, s.roster.Len())
	result, err := s.resolveTurn(position, round)
	if err != nil {
		return nil, err
	}
	if result.State != TurnStateResolving {
		return nil, nil
	}

	roundDone, draftDone := s.advance()
	return &PickCommit{
		ParticipantID:   result.Participant.ID,
		ParticipantName: result.Participant.Name,
		Team:            result.Team,
		Round:           round,
		Position:        position,
		RoundComplete:   roundDone,
		DraftComplete:   draftDone,
	}, nil
}

// AdvanceWithoutPick moves the draft past the current turn without
// committing anything. The participant's round slot stays empty; whether
// it can be filled later depends on the session's late-pick setting.
func (s *Session) AdvanceWithoutPick() (*TurnAdvance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.IsComplete() {
		return nil, ErrDraftComplete
	}
	if !s.finalized {
		return nil, ErrOrderNotFinalized
	}

	round, position := TurnAt(s.currentPick, s.roster.Len())
	participant, err := s.roster.ByPosition(position)
	if err != nil {
		return nil, err
	}

	roundDone, draftDone := s.advance()
	return &TurnAdvance{
		ParticipantID:   participant.ID,
		ParticipantName: participant.Name,
		Round:           round,
		Position:        position,
		RoundComplete:   roundDone,
		DraftComplete:   draftDone,
	}, nil
}

// advance moves to the next absolute pick index. Any pending skip request
// dies with the turn it targeted. Caller must hold the lock.
func (s *Session) advance() (roundComplete, draftComplete bool) {
	s.skipRequested = false
	s.currentPick++

	total := s.roster.Len() * s.roundLimit
	if s.currentPick >= total {
		s.status = models.SessionStatusComplete
		return true, true
	}
	return s.currentPick%s.roster.Len() == 0, false
}

// OnClock returns the participant whose turn it currently is.
func (s *Session) OnClock() (participant *models.Participant, round, position int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finalized {
		return nil, 0, 0, ErrOrderNotFinalized
	}
	if s.status.IsComplete() {
		return nil, 0, 0, ErrDraftComplete
	}

	round, position = TurnAt(s.currentPick, s.roster.Len())
	participant, err = s.roster.ByPosition(position)
	if err != nil {
		return nil, 0, 0, err
	}
	return participant, round, position, nil
}

// ConsumeSkip clears and returns the one-shot skip flag.
func (s *Session) ConsumeSkip() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.skipRequested {
		return false
	}
	s.skipRequested = false
	return true
}

// SetSinglePick clears the participant's queue and installs the team as
// the sole reservation. Returns false without error when the team is not
// available; the existing queue is still cleared, modeling latest request
// wins.
func (s *Session) SetSinglePick(participantID, team string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant, err := s.roster.ByID(participantID)
	if err != nil {
		return false, err
	}

	participant.ClearQueue()
	if !s.ledger.IsAvailable(team) {
		return false, nil
	}
	participant.Enqueue(NormalizeTeam(team))
	return true, nil
}

// SetMultiplePicks clears the participant's queue and installs up to
// MaxQueueSize available teams in the order given, skipping unavailable
// or duplicate entries. Returns true iff at least one was installed.
func (s *Session) SetMultiplePicks(participantID string, teams []string, doublePick bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant, err := s.roster.ByID(participantID)
	if err != nil {
		return false, err
	}

	participant.ClearQueue()
	seen := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		team = NormalizeTeam(team)
		if team == "" {
			continue
		}
		if _, ok := seen[team]; ok {
			continue
		}
		seen[team] = struct{}{}
		if !s.ledger.IsAvailable(team) {
			continue
		}
		if !participant.Enqueue(team) {
			break
		}
	}

	if len(participant.Queue) == 0 {
		return false, nil
	}
	participant.DoublePick = doublePick
	return true, nil
}

// PickRandom selects uniformly from the teams with picks remaining and
// installs the choice as the participant's sole reservation.
func (s *Session) PickRandom(participantID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant, err := s.roster.ByID(participantID)
	if err != nil {
		return "", err
	}

	available := s.ledger.Available()
	if len(available) == 0 {
		return "", ErrPoolEmpty
	}

	team := available[s.rng.Intn(len(available))]
	participant.ClearQueue()
	participant.Enqueue(team)
	return team, nil
}

// QueueOf returns a copy of the participant's current reservation queue.
func (s *Session) QueueOf(participantID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant, err := s.roster.ByID(participantID)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), participant.Queue...), nil
}

// ClearQueue empties the participant's reservations. Idempotent.
func (s *Session) ClearQueue(participantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant, err := s.roster.ByID(participantID)
	if err != nil {
		return err
	}
	participant.ClearQueue()
	return nil
}

// AddTeam adds a team to the pool. After finalization the team receives
// the same pick allocation the rest of the pool got.
func (s *Session) AddTeam(number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	number = NormalizeTeam(number)
	if number == "" {
		return ErrTeamNotFound
	}

	if !s.finalized {
		for _, existing := range s.teamPool {
			if existing == number {
				return ErrTeamExists
			}
		}
		s.teamPool = append(s.teamPool, number)
		return nil
	}
	return s.ledger.AddWithPicks(number, s.picksEach)
}

// RemoveTeam deletes a team from the pool and nulls it out of every
// participant's committed-round record, so no result row references a
// team that no longer exists.
func (s *Session) RemoveTeam(number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	number = NormalizeTeam(number)

	if !s.finalized {
		for i, existing := range s.teamPool {
			if existing == number {
				s.teamPool = append(s.teamPool[:i], s.teamPool[i+1:]...)
				return nil
			}
		}
		return ErrTeamNotFound
	}

	if err := s.ledger.Remove(number); err != nil {
		return err
	}
	for _, participant := range s.roster.All() {
		for i, pick := range participant.Picks {
			if pick == number {
				participant.Picks[i] = ""
			}
		}
	}
	return nil
}

// LatePick fills a skipped participant's empty slot for an already-played
// round. Only permitted when the session was configured to allow it.
func (s *Session) LatePick(participantID string, round int, team string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.allowLatePick {
		return ErrLatePickNotAllowed
	}
	if !s.finalized {
		return ErrOrderNotFinalized
	}
	if round < 1 || round > s.roundLimit {
		return ErrRoundNotReached
	}

	participant, err := s.roster.ByID(participantID)
	if err != nil {
		return err
	}

	if !s.status.IsComplete() {
		// Only rounds the draft has moved past can be back-filled.
		currentRound, _ := TurnAt(s.currentPick, s.roster.Len())
		if round >= currentRound {
			return ErrRoundNotReached
		}
	}
	if participant.Picks[round-1] != "" {
		return ErrRoundSlotFilled
	}

	team = NormalizeTeam(team)
	if err := s.ledger.Decrement(team); err != nil {
		return ErrTeamNotAvailable
	}
	participant.Picks[round-1] = team
	return nil
}

// StatusReport is a point-in-time view of a session for status commands
type StatusReport struct {
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

// Report summarizes the session's current state.
func (s *Session) Report() *StatusReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &StatusReport{
		Name:           s.name,
		Status:         s.status,
		TeamsLeft:      len(s.ledger.Available()),
		PicksRemaining: s.ledger.TotalRemaining(),
		TotalSlots:     s.roster.Len() * s.roundLimit,
	}
	for _, participant := range s.roster.All() {
		report.FilledSlots += participant.FilledPicks()
	}
	if s.finalized && !s.status.IsComplete() {
		round, position := TurnAt(s.currentPick, s.roster.Len())
		report.Round = round
		report.Position = position
		if participant, err := s.roster.ByPosition(position); err == nil {
			report.OnClockID = participant.ID
			report.OnClockName = participant.Name
			report.QueueLength = len(participant.Queue)
		}
	}
	return report
}

// Participants returns the roster in position order once finalized,
// registration order before that.
func (s *Session) Participants() []*models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return s.roster.InPositionOrder()
	}
	return s.roster.All()
}

// Teams returns the ledger entries, exhausted teams included.
func (s *Session) Teams() []*models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Teams()
}
