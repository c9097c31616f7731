package draft

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/jnairn/vexdraft/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultPollInterval is how often the turn-loop worker rechecks a
	// stalled turn
	DefaultPollInterval = 2 * time.Second
)

// SessionConfig holds configuration for a draft session
type SessionConfig struct {
	// Name is the session's unique key
	Name string

	// Rounds is the number of rounds to be played
	Rounds int

	// ParticipantCap limits registration; 0 means no cap
	ParticipantCap int

	// AdminID is the user who created the draft and may run admin
	// operations
	AdminID string

	// RosterRef identifies the external event the team pool came from
	RosterRef string

	// TurnLimit is the per-turn time limit; 0 disables timeouts
	TurnLimit time.Duration

	// WarnBefore is how long before the limit the one-time warning fires
	WarnBefore time.Duration

	// Downtime suspends timeout-skipping during these hours
	Downtime *models.DowntimeWindow

	// AllowLatePick permits a skipped participant to fill their empty
	// round slot later
	AllowLatePick bool

	// PollInterval overrides the worker's poll cadence
	PollInterval time.Duration

	// Seed drives the draft-order shuffle; 0 picks one from the clock
	Seed int64
}

// Session aggregates the inventory ledger, the participant roster and the
// session metadata into the unit of lifecycle and persistence. Every
// mutable field is instance-scoped and guarded by a single mutex; external
// commands and the turn-loop worker both go through it.
type Session struct {
	mu sync.Mutex

	name           string
	roundLimit     int
	participantCap int
	adminID        string
	rosterRef      string

	turnLimit     time.Duration
	warnBefore    time.Duration
	downtime      *models.DowntimeWindow
	allowLatePick bool
	pollInterval  time.Duration

	seed int64
	rng  *rand.Rand

	teamPool []string
	ledger   *Ledger
	roster   *Roster

	status    models.SessionStatus
	finalized bool
	picksEach int

	currentPick   int
	skipRequested bool

	channelID         string
	announceChannelID string
	announcementID    string
	emoji             string
}

// NewSession creates a draft session in the setup state.
func NewSession(cfg *SessionConfig) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Name == "" {
		return nil, errors.New("session name cannot be empty")
	}
	if cfg.Rounds < 1 {
		return nil, errors.New("round limit must be at least 1")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	return &Session{
		name:           cfg.Name,
		roundLimit:     cfg.Rounds,
		participantCap: cfg.ParticipantCap,
		adminID:        cfg.AdminID,
		rosterRef:      cfg.RosterRef,
		turnLimit:      cfg.TurnLimit,
		warnBefore:     cfg.WarnBefore,
		downtime:       cfg.Downtime,
		allowLatePick:  cfg.AllowLatePick,
		pollInterval:   pollInterval,
		seed:           seed,
		rng:            rand.New(rand.NewSource(seed)),
		ledger:         NewLedger(),
		roster:         NewRoster(),
		status:         models.SessionStatusSetup,
	}, nil
}

// Name returns the session's unique key.
func (s *Session) Name() string {
	return s.name
}

// Status returns the session lifecycle state.
func (s *Session) Status() models.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// AdminID returns the user who created the draft.
func (s *Session) AdminID() string {
	return s.adminID
}

// RoundLimit returns the number of rounds to be played.
func (s *Session) RoundLimit() int {
	return s.roundLimit
}

// ChannelID returns the channel the running draft talks in.
func (s *Session) ChannelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channelID
}

// PollInterval returns the worker's poll cadence.
func (s *Session) PollInterval() time.Duration {
	return s.pollInterval
}

// SetTeamPool installs the draftable team numbers. The ledger itself is
// seeded at finalization, once the participant count is known and the
// per-team pick allocation can be computed.
func (s *Session) SetTeamPool(numbers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return ErrOrderFinalized
	}
	if len(s.teamPool) > 0 {
		return ErrAlreadySeeded
	}

	seen := make(map[string]struct{}, len(numbers))
	pool := make([]string, 0, len(numbers))
	for _, number := range numbers {
		number = NormalizeTeam(number)
		if number == "" {
			continue
		}
		if _, ok := seen[number]; ok {
			continue
		}
		seen[number] = struct{}{}
		pool = append(pool, number)
	}
	s.teamPool = pool
	return nil
}

// Register adds an entrant to the roster. Registration closes once the
// draft order is finalized.
func (s *Session) Register(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return ErrOrderFinalized
	}
	if s.participantCap > 0 && s.roster.Len() >= s.participantCap {
		return ErrSessionFull
	}
	return s.roster.Add(id, name)
}

// LogAnnouncement records the registration announcement so entrants can be
// collected from its reactions later.
func (s *Session) LogAnnouncement(messageID, emoji, channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announcementID = messageID
	s.emoji = emoji
	s.announceChannelID = channelID
}

// Announcement returns the recorded announcement message ID, emoji and
// channel.
func (s *Session) Announcement() (messageID, emoji, channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.announcementID, s.emoji, s.announceChannelID
}

// SetChannel sets the channel the running draft talks in.
func (s *Session) SetChannel(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channelID = channelID
}

// ReleaseChannel clears the channel handle once the draft has finished,
// leaving the session ready for archival or reuse.
func (s *Session) ReleaseChannel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channelID = ""
}

// currentPickIndex exposes the absolute pick index to the worker so it can
// notice turn transitions.
func (s *Session) currentPickIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPick
}

// SetTurnPolicy configures the per-turn time limit, the warning threshold
// and the downtime window. The worker snapshots the policy when it is
// constructed, so changes after the turn loop starts have no effect on
// that run.
func (s *Session) SetTurnPolicy(limit, warnBefore time.Duration, downtime *models.DowntimeWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turnLimit = limit
	s.warnBefore = warnBefore
	s.downtime = downtime
}

// TurnPolicy returns the configured timeout policy.
func (s *Session) TurnPolicy() (limit, warnBefore time.Duration, downtime *models.DowntimeWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turnLimit, s.warnBefore, s.downtime
}

// FinalizeOrder shuffles the registered entrants with the session's
// persisted seed, assigns positions 1..N, computes the per-team pick
// allocation and seeds the ledger. Must be called exactly once, before the
// turn loop starts.
func (s *Session) FinalizeOrder() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return ErrOrderFinalized
	}
	if s.roster.Len() == 0 {
		return ErrNoParticipants
	}
	if len(s.teamPool) == 0 {
		return ErrNoTeams
	}

	participants := s.roster.All()
	s.rng.Shuffle(len(participants), func(i, j int) {
		participants[i], participants[j] = participants[j], participants[i]
	})
	for i, participant := range participants {
		participant.Position = i + 1
		participant.Picks = make([]string, s.roundLimit)
	}

	s.picksEach = allocatePicks(s.roster.Len(), s.roundLimit, len(s.teamPool))
	if err := s.ledger.Seed(s.teamPool, s.picksEach); err != nil {
		return err
	}

	demand := s.roster.Len() * s.roundLimit
	supply := s.ledger.TotalRemaining()
	if supply < demand {
		log.Warn().
			Str("session", s.name).
			Int("supply", supply).
			Int("demand", demand).
			Msg("team pool cannot cover every round slot")
	}

	s.finalized = true
	s.status = models.SessionStatusDrafting
	return nil
}

// allocatePicks computes the fair-share per-team pick count: total demand
// divided by team count, rounded up, never below 1. The allocation is a
// heuristic and is not rebalanced mid-draft.
func allocatePicks(participants, rounds, teams int) int {
	if teams < 1 {
		return 1
	}
	picks := int(math.Ceil(float64(participants*rounds) / float64(teams)))
	if picks < 1 {
		picks = 1
	}
	return picks
}

// Finalized reports whether the draft order has been locked in.
func (s *Session) Finalized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalized
}

// RequestSkip flags the current turn to be advanced without a commit. The
// flag is one-shot: the worker consumes it on its next idle check.
func (s *Session) RequestSkip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipRequested = true
}

// TotalPicks is how many pick slots the whole draft has.
func (s *Session) TotalPicks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Len() * s.roundLimit
}

// Snapshot serializes the full session state, participants and ledger
// included, so an interrupted draft can resume at its current round and
// position.
func (s *Session) Snapshot() *models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &models.SessionSnapshot{
		Name:              s.name,
		ParticipantCap:    s.participantCap,
		RoundLimit:        s.roundLimit,
		AnnouncementID:    s.announcementID,
		Emoji:             s.emoji,
		AnnounceChannelID: s.announceChannelID,
		RosterRef:         s.rosterRef,
		RandomSeed:        s.seed,
		CurrentPick:       s.currentPick,
		ChannelID:         s.channelID,
		AdminID:           s.adminID,
		Status:            s.status,
		Finalized:         s.finalized,
		TurnLimitMin:      int(s.turnLimit / time.Minute),
		WarnBeforeMin:     int(s.warnBefore / time.Minute),
		Downtime:          s.downtime,
		AllowLatePick:     s.allowLatePick,
		PollSeconds:       int(s.pollInterval / time.Second),
		PicksEach:         s.picksEach,
		TeamPool:          append([]string(nil), s.teamPool...),
		SavedAt:           time.Now(),
	}

	for _, team := range s.ledger.Teams() {
		snap.Teams = append(snap.Teams, &models.Team{
			Number:    team.Number,
			Remaining: team.Remaining,
		})
	}
	for _, p := range s.roster.All() {
		snap.Participants = append(snap.Participants, &models.Participant{
			ID:         p.ID,
			Name:       p.Name,
			Position:   p.Position,
			Queue:      append([]string(nil), p.Queue...),
			Picks:      append([]string(nil), p.Picks...),
			DoublePick: p.DoublePick,
		})
	}

	return snap
}

// RestoreSession rebuilds a session from a persisted snapshot. The random
// seed is reapplied so a draft order finalized after a restore matches the
// one the original process would have produced.
func RestoreSession(snap *models.SessionSnapshot) (*Session, error) {
	if snap == nil {
		return nil, errors.New("snapshot cannot be nil")
	}

	s, err := NewSession(&SessionConfig{
		Name:           snap.Name,
		Rounds:         snap.RoundLimit,
		ParticipantCap: snap.ParticipantCap,
		AdminID:        snap.AdminID,
		RosterRef:      snap.RosterRef,
		TurnLimit:      time.Duration(snap.TurnLimitMin) * time.Minute,
		WarnBefore:     time.Duration(snap.WarnBeforeMin) * time.Minute,
		Downtime:       snap.Downtime,
		AllowLatePick:  snap.AllowLatePick,
		PollInterval:   time.Duration(snap.PollSeconds) * time.Second,
		Seed:           snap.RandomSeed,
	})
	if err != nil {
		return nil, err
	}

	s.announcementID = snap.AnnouncementID
	s.emoji = snap.Emoji
	s.announceChannelID = snap.AnnounceChannelID
	s.channelID = snap.ChannelID
	s.teamPool = append([]string(nil), snap.TeamPool...)
	s.currentPick = snap.CurrentPick
	s.finalized = snap.Finalized
	s.picksEach = snap.PicksEach
	if snap.Status != "" {
		s.status = snap.Status
	}
	s.ledger = restoreLedger(snap.Teams)
	s.roster = restoreRoster(snap.Participants)

	return s, nil
}
