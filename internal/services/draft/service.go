package draft

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	engine "github.com/jnairn/vexdraft/internal/draft"
	"github.com/jnairn/vexdraft/internal/export"
	"github.com/jnairn/vexdraft/internal/models"
	sessionRepo "github.com/jnairn/vexdraft/internal/repositories/session"
	"github.com/jnairn/vexdraft/internal/services/notify"
)

// service implements the Service interface
type service struct {
	repo     sessionRepo.Repository
	roster   RosterClient
	notifier notify.Service
	clock    clockwork.Clock

	directory *engine.Directory

	runCtx context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	running map[string]bool
}

// New creates a new draft service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	runCtx, cancel := context.WithCancel(context.Background())

	return &service{
		repo:      cfg.SessionRepo,
		roster:    cfg.RosterClient,
		notifier:  cfg.Notifier,
		clock:     clk,
		directory: engine.NewDirectory(),
		runCtx:    runCtx,
		cancel:    cancel,
		running:   make(map[string]bool),
	}, nil
}

// CreateDraft configures a new draft session and seeds its team pool
func (s *service) CreateDraft(ctx context.Context, input *CreateDraftInput) (*CreateDraftOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}
	if input.Rounds < 1 {
		return nil, errors.New("round limit must be at least 1")
	}

	teams := input.Teams
	if len(teams) == 0 {
		if s.roster == nil || input.EventRef == "" {
			return nil, ErrNoTeamSource
		}
		fetched, err := s.roster.FetchTeamPool(ctx, input.EventRef)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch team pool: %w", err)
		}
		teams = fetched
	}
	if len(teams) == 0 {
		return nil, engine.ErrNoTeams
	}

	session, err := engine.NewSession(&engine.SessionConfig{
		Name:           input.Name,
		Rounds:         input.Rounds,
		ParticipantCap: input.ParticipantCap,
		AdminID:        input.RequesterID,
		RosterRef:      input.EventRef,
		AllowLatePick:  input.AllowLatePick,
		Seed:           input.Seed,
	})
	if err != nil {
		return nil, err
	}
	if err := session.SetTeamPool(teams); err != nil {
		return nil, err
	}

	if err := s.directory.Add(session); err != nil {
		return nil, err
	}

	if err := s.SaveSnapshot(ctx, session.Snapshot()); err != nil {
		// Roll the registration back so a retry is clean.
		_ = s.directory.Remove(session.Name())
		return nil, err
	}

	log.Info().
		Str("session", input.Name).
		Int("rounds", input.Rounds).
		Int("teams", len(teams)).
		Msg("draft created")

	return &CreateDraftOutput{
		Name:      session.Name(),
		TeamCount: len(teams),
	}, nil
}

// AnnounceDraft records the registration announcement for a draft
func (s *service) AnnounceDraft(ctx context.Context, input *AnnounceDraftInput) (*AnnounceDraftOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(session, input.RequesterID); err != nil {
		return nil, err
	}

	session.LogAnnouncement(input.MessageID, input.Emoji, input.ChannelID)
	s.save(ctx, session)

	return &AnnounceDraftOutput{Success: true}, nil
}

// SetupDraft registers the entrants collected from the announcement
func (s *service) SetupDraft(ctx context.Context, input *SetupDraftInput) (*SetupDraftOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(session, input.RequesterID); err != nil {
		return nil, err
	}

	registered := 0
	for _, entrant := range input.Entrants {
		if entrant.ID == "" {
			continue
		}
		err := session.Register(entrant.ID, entrant.Name)
		if err != nil {
			if errors.Is(err, engine.ErrParticipantExists) {
				continue
			}
			if errors.Is(err, engine.ErrSessionFull) {
				break
			}
			return nil, err
		}
		registered++
	}

	s.save(ctx, session)

	return &SetupDraftOutput{Registered: registered}, nil
}

// StartDraft finalizes the draft order and starts the turn loop
func (s *service) StartDraft(ctx context.Context, input *StartDraftInput) (*StartDraftOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}
	if input.ChannelID == "" {
		return nil, ErrMissingChannel
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(session, input.RequesterID); err != nil {
		return nil, err
	}
	if session.Finalized() {
		return nil, ErrDraftRunning
	}

	session.SetChannel(input.ChannelID)
	if input.TimeLimitMin > 0 {
		session.SetTurnPolicy(
			minutes(input.TimeLimitMin),
			minutes(input.WarnBeforeMin),
			input.Downtime,
		)
	}

	if err := session.FinalizeOrder(); err != nil {
		return nil, err
	}
	if err := s.SaveSnapshot(ctx, session.Snapshot()); err != nil {
		return nil, err
	}

	if err := s.launchWorker(session); err != nil {
		return nil, err
	}

	snap := session.Snapshot()
	order := make([]ParticipantPosition, 0, len(snap.Participants))
	for _, p := range session.Participants() {
		order = append(order, ParticipantPosition{
			Position: p.Position,
			ID:       p.ID,
			Name:     p.Name,
		})
	}

	log.Info().
		Str("session", input.Name).
		Int("participants", len(order)).
		Msg("draft started")

	return &StartDraftOutput{
		Order:        order,
		PicksPerTeam: snap.PicksEach,
	}, nil
}

// Pick reserves a single team for the participant's next turn
func (s *service) Pick(ctx context.Context, input *PickInput) (*PickOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}

	installed, err := session.SetSinglePick(input.ParticipantID, input.Team)
	if err != nil {
		return nil, err
	}
	s.save(ctx, session)

	return &PickOutput{Installed: installed}, nil
}

// ReservePicks reserves up to four teams to be consumed in order
func (s *service) ReservePicks(ctx context.Context, input *ReservePicksInput) (*ReservePicksOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}

	installed, err := session.SetMultiplePicks(input.ParticipantID, input.Teams, input.DoublePick)
	if err != nil {
		return nil, err
	}
	s.save(ctx, session)

	queue, err := session.QueueOf(input.ParticipantID)
	if err != nil {
		return nil, err
	}

	return &ReservePicksOutput{
		Installed: installed,
		Queue:     queue,
	}, nil
}

// ClearPicks empties a participant's reservations
func (s *service) ClearPicks(ctx context.Context, input *ClearPicksInput) (*ClearPicksOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}

	if err := session.ClearQueue(input.ParticipantID); err != nil {
		return nil, err
	}
	s.save(ctx, session)

	return &ClearPicksOutput{Success: true}, nil
}

// RandomPick reserves a uniformly random available team
func (s *service) RandomPick(ctx context.Context, input *RandomPickInput) (*RandomPickOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}

	team, err := session.PickRandom(input.ParticipantID)
	if err != nil {
		return nil, err
	}
	s.save(ctx, session)

	return &RandomPickOutput{Team: team}, nil
}

// SkipTurn flags the current turn to advance without a commit
func (s *service) SkipTurn(ctx context.Context, input *SkipTurnInput) (*SkipTurnOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(session, input.RequesterID); err != nil {
		return nil, err
	}

	session.RequestSkip()

	return &SkipTurnOutput{Success: true}, nil
}

// LatePick back-fills a skipped participant's empty round slot
func (s *service) LatePick(ctx context.Context, input *LatePickInput) (*LatePickOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}

	if err := session.LatePick(input.ParticipantID, input.Round, input.Team); err != nil {
		return nil, err
	}
	s.save(ctx, session)

	return &LatePickOutput{Success: true}, nil
}

// AddTeam adds a team to a draft's pool
func (s *service) AddTeam(ctx context.Context, input *AddTeamInput) (*AddTeamOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(session, input.RequesterID); err != nil {
		return nil, err
	}

	if err := session.AddTeam(input.Team); err != nil {
		return nil, err
	}
	s.save(ctx, session)

	return &AddTeamOutput{Success: true}, nil
}

// RemoveTeam removes a team and nulls out its committed picks
func (s *service) RemoveTeam(ctx context.Context, input *RemoveTeamInput) (*RemoveTeamOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(session, input.RequesterID); err != nil {
		return nil, err
	}

	if err := session.RemoveTeam(input.Team); err != nil {
		return nil, err
	}
	s.save(ctx, session)

	return &RemoveTeamOutput{Success: true}, nil
}

// DraftStatus summarizes a session's current state
func (s *service) DraftStatus(ctx context.Context, input *DraftStatusInput) (*DraftStatusOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}

	report := session.Report()
	return &DraftStatusOutput{
		Name:           report.Name,
		Status:         report.Status,
		Round:          report.Round,
		Position:       report.Position,
		OnClockID:      report.OnClockID,
		OnClockName:    report.OnClockName,
		QueueLength:    report.QueueLength,
		TeamsLeft:      report.TeamsLeft,
		PicksRemaining: report.PicksRemaining,
		FilledSlots:    report.FilledSlots,
		TotalSlots:     report.TotalSlots,
	}, nil
}

// ExportResults renders the draft results as rows and a CSV artifact
func (s *service) ExportResults(ctx context.Context, input *ExportResultsInput) (*ExportResultsOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and draft name cannot be empty")
	}

	session, err := s.directory.Get(input.Name)
	if err != nil {
		return nil, err
	}

	snap := session.Snapshot()
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, snap); err != nil {
		return nil, err
	}

	return &ExportResultsOutput{
		Rows:     export.Rows(snap),
		CSV:      buf.Bytes(),
		Filename: export.Filename(session.Name()),
	}, nil
}

// RestoreAll reloads persisted sessions at process start and resumes any
// that were mid-draft
func (s *service) RestoreAll(ctx context.Context) (*RestoreAllOutput, error) {
	listed, err := s.repo.ListSessions(ctx, &sessionRepo.ListSessionsInput{})
	if err != nil {
		return nil, err
	}

	output := &RestoreAllOutput{}
	for _, snap := range listed.Snapshots {
		session, err := engine.RestoreSession(snap)
		if err != nil {
			log.Error().Err(err).Str("session", snap.Name).Msg("failed to restore session")
			continue
		}
		if err := s.directory.Add(session); err != nil {
			continue
		}
		output.Restored++

		if session.Status().IsDrafting() {
			if err := s.launchWorker(session); err != nil {
				log.Error().Err(err).Str("session", snap.Name).Msg("failed to resume turn loop")
				continue
			}
			output.Resumed++
		}
	}

	log.Info().
		Int("restored", output.Restored).
		Int("resumed", output.Resumed).
		Msg("sessions restored from store")

	return output, nil
}

// Close stops all running turn loops
func (s *service) Close() {
	s.cancel()
}

// SaveSnapshot persists a snapshot; it also serves as the worker's saver.
func (s *service) SaveSnapshot(ctx context.Context, snap *models.SessionSnapshot) error {
	return s.repo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Snapshot: snap})
}

// save persists a session's current state, logging instead of failing so
// user-facing operations stay fast and committed state is never rolled
// back over a storage hiccup.
func (s *service) save(ctx context.Context, session *engine.Session) {
	if err := s.SaveSnapshot(ctx, session.Snapshot()); err != nil {
		log.Error().Err(err).Str("session", session.Name()).Msg("failed to persist session")
	}
}

func (s *service) launchWorker(session *engine.Session) error {
	s.mu.Lock()
	if s.running[session.Name()] {
		s.mu.Unlock()
		return ErrDraftRunning
	}
	s.running[session.Name()] = true
	s.mu.Unlock()

	var publisher engine.Publisher
	if s.notifier != nil {
		publisher = s.notifier
	}

	worker, err := engine.NewWorker(&engine.WorkerConfig{
		Session:   session,
		Publisher: publisher,
		Saver:     s,
		Clock:     s.clock,
	})
	if err != nil {
		s.mu.Lock()
		delete(s.running, session.Name())
		s.mu.Unlock()
		return err
	}

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.running, session.Name())
			s.mu.Unlock()
		}()
		if err := worker.Run(s.runCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Str("session", session.Name()).Msg("turn loop exited with error")
		}
	}()

	return nil
}

// requireAdmin rejects admin-only operations from anyone but the draft's
// creator, before any state is touched.
func requireAdmin(session *engine.Session, requesterID string) error {
	if admin := session.AdminID(); admin != "" && requesterID != admin {
		return ErrPermissionDenied
	}
	return nil
}

func minutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}
