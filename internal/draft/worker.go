package draft

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/jnairn/vexdraft/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Publisher receives notification events from the turn loop. Delivery is
// someone else's problem; the worker only decides what is worth saying.
type Publisher interface {
	Publish(ctx context.Context, event *models.DraftEvent) error
}

// SnapshotSaver persists session snapshots as the draft progresses so a
// process restart can resume mid-draft.
type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, snap *models.SessionSnapshot) error
}

// WorkerConfig holds configuration for a turn-loop worker
type WorkerConfig struct {
	// Session is the draft the worker drives
	Session *Session

	// Publisher receives turn events; nil disables notifications
	Publisher Publisher

	// Saver persists progress snapshots; nil disables mid-draft saves
	Saver SnapshotSaver

	// Clock is the time source; defaults to the real clock
	Clock clockwork.Clock
}

// Worker runs one draft session's turn loop on a background goroutine. It
// polls coarsely rather than reacting to events: drafts are human-paced,
// and a configurable sleep-and-recheck keeps the engine free of any
// particular runtime's scheduling machinery.
type Worker struct {
	session   *Session
	publisher Publisher
	saver     SnapshotSaver
	clock     clockwork.Clock
	interval  time.Duration

	// Timeout policy, snapshotted from the session at construction so the
	// loop never reads policy fields concurrently with session writers.
	turnLimit  time.Duration
	warnBefore time.Duration
	downtime   *models.DowntimeWindow
}

// NewWorker creates a worker for a session.
func NewWorker(cfg *WorkerConfig) (*Worker, error) {
	if cfg == nil || cfg.Session == nil {
		return nil, errors.New("config and session cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	limit, warnBefore, downtime := cfg.Session.TurnPolicy()

	return &Worker{
		session:    cfg.Session,
		publisher:  cfg.Publisher,
		saver:      cfg.Saver,
		clock:      clk,
		interval:   cfg.Session.PollInterval(),
		turnLimit:  limit,
		warnBefore: warnBefore,
		downtime:   downtime,
	}, nil
}

// Run executes the turn loop until the draft completes or the context is
// cancelled. The draft order must already be finalized.
func (w *Worker) Run(ctx context.Context) error {
	if !w.session.Finalized() {
		return ErrOrderNotFinalized
	}

	logger := log.With().Str("session", w.session.Name()).Logger()
	logger.Info().Msg("turn loop starting")

	lastPick := -1
	var turnStart time.Time
	warned := false

	for {
		if w.session.Status().IsComplete() {
			logger.Info().Msg("turn loop finished")
			return nil
		}

		participant, round, position, err := w.session.OnClock()
		if err != nil {
			if errors.Is(err, ErrDraftComplete) {
				return nil
			}
			return err
		}

		// A new turn began since the last iteration.
		if idx := w.session.currentPickIndex(); idx != lastPick {
			lastPick = idx
			turnStart = w.clock.Now()
			warned = false
			w.emit(ctx, &models.DraftEvent{
				Type:            models.EventTurnStarted,
				ParticipantID:   participant.ID,
				ParticipantName: participant.Name,
				Round:           round,
				Position:        position,
			})
		}

		commit, err := w.session.TryResolveCurrent()
		if err != nil {
			if errors.Is(err, ErrDraftComplete) {
				return nil
			}
			return err
		}
		if commit != nil {
			logger.Info().
				Str("participant", commit.ParticipantName).
				Str("team", commit.Team).
				Int("round", commit.Round).
				Msg("pick committed")
			w.emitCommit(ctx, commit, models.EventPickCommitted)
			if commit.DraftComplete {
				w.session.ReleaseChannel()
			}
			w.save(ctx)
			continue
		}

		if w.session.ConsumeSkip() {
			advance, err := w.session.AdvanceWithoutPick()
			if err != nil {
				return err
			}
			logger.Info().
				Str("participant", advance.ParticipantName).
				Int("round", advance.Round).
				Msg("turn skipped")
			w.emitAdvance(ctx, advance)
			if advance.DraftComplete {
				w.session.ReleaseChannel()
			}
			w.save(ctx)
			continue
		}

		if forced := w.checkTimeout(ctx, &logger, participant, round, position, turnStart, &warned); forced {
			continue
		}

		select {
		case <-ctx.Done():
			logger.Info().Msg("turn loop cancelled")
			return ctx.Err()
		case <-w.clock.After(w.interval):
		}
	}
}

// checkTimeout applies the warning and forced-pick policy for a stalled
// turn. Returns true when it acted and the loop should re-resolve
// immediately.
func (w *Worker) checkTimeout(ctx context.Context, logger *zerolog.Logger, participant *models.Participant, round, position int, turnStart time.Time, warned *bool) bool {
	limit := w.turnLimit
	if limit <= 0 {
		return false
	}

	now := w.clock.Now()
	elapsed := now.Sub(turnStart)

	if !*warned && w.warnBefore > 0 && elapsed >= limit-w.warnBefore && elapsed < limit {
		*warned = true
		w.emit(ctx, &models.DraftEvent{
			Type:            models.EventTurnWarning,
			ParticipantID:   participant.ID,
			ParticipantName: participant.Name,
			Round:           round,
			Position:        position,
		})
		return false
	}

	if elapsed < limit {
		return false
	}
	if w.downtime.Contains(now.Hour()) {
		// Timeout-skipping is suspended for the night.
		return false
	}

	team, err := w.session.PickRandom(participant.ID)
	if err != nil {
		if errors.Is(err, ErrPoolEmpty) {
			// Nothing left to assign; move on without a commit.
			advance, advErr := w.session.AdvanceWithoutPick()
			if advErr == nil {
				logger.Warn().
					Str("participant", participant.Name).
					Msg("turn timed out with an empty pool")
				w.emitAdvance(ctx, advance)
				if advance.DraftComplete {
					w.session.ReleaseChannel()
				}
				w.save(ctx)
			}
			return true
		}
		logger.Error().Err(err).Msg("forced pick failed")
		return false
	}

	logger.Info().
		Str("participant", participant.Name).
		Str("team", team).
		Msg("turn timed out, picking on their behalf")
	w.emit(ctx, &models.DraftEvent{
		Type:            models.EventAutoPick,
		ParticipantID:   participant.ID,
		ParticipantName: participant.Name,
		Team:            team,
		Round:           round,
		Position:        position,
	})
	return true
}

func (w *Worker) emitCommit(ctx context.Context, commit *PickCommit, eventType models.EventType) {
	w.emit(ctx, &models.DraftEvent{
		Type:            eventType,
		ParticipantID:   commit.ParticipantID,
		ParticipantName: commit.ParticipantName,
		Team:            commit.Team,
		Round:           commit.Round,
		Position:        commit.Position,
	})
	if commit.DraftComplete {
		w.emit(ctx, &models.DraftEvent{
			Type:  models.EventDraftComplete,
			Round: commit.Round,
		})
	} else if commit.RoundComplete {
		w.emit(ctx, &models.DraftEvent{
			Type:  models.EventRoundComplete,
			Round: commit.Round,
		})
	}
}

func (w *Worker) emitAdvance(ctx context.Context, advance *TurnAdvance) {
	w.emit(ctx, &models.DraftEvent{
		Type:            models.EventTurnSkipped,
		ParticipantID:   advance.ParticipantID,
		ParticipantName: advance.ParticipantName,
		Round:           advance.Round,
		Position:        advance.Position,
	})
	if advance.DraftComplete {
		w.emit(ctx, &models.DraftEvent{
			Type:  models.EventDraftComplete,
			Round: advance.Round,
		})
	} else if advance.RoundComplete {
		w.emit(ctx, &models.DraftEvent{
			Type:  models.EventRoundComplete,
			Round: advance.Round,
		})
	}
}

// emit publishes an event, filling in session-wide fields. Failures are
// logged and swallowed; notifications never affect draft state.
func (w *Worker) emit(ctx context.Context, event *models.DraftEvent) {
	if w.publisher == nil {
		return
	}
	event.ID = uuid.New().String()
	event.Session = w.session.Name()
	event.ChannelID = w.session.ChannelID()
	event.Timestamp = w.clock.Now()
	if err := w.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).
			Str("session", w.session.Name()).
			Str("type", string(event.Type)).
			Msg("failed to publish draft event")
	}
}

func (w *Worker) save(ctx context.Context) {
	if w.saver == nil {
		return
	}
	if err := w.saver.SaveSnapshot(ctx, w.session.Snapshot()); err != nil {
		log.Error().Err(err).
			Str("session", w.session.Name()).
			Msg("failed to save progress snapshot")
	}
}
