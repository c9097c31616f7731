package draft

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/jnairn/vexdraft/internal/services/draft Service

import "context"

// Service is the external-facing surface of the draft engine. The chat
// front-end translates commands into these operations; everything here is
// safe to call concurrently with a running turn loop.
type Service interface {
	// CreateDraft configures a new draft session and seeds its team pool
	CreateDraft(ctx context.Context, input *CreateDraftInput) (*CreateDraftOutput, error)

	// AnnounceDraft records the registration announcement for a draft
	AnnounceDraft(ctx context.Context, input *AnnounceDraftInput) (*AnnounceDraftOutput, error)

	// SetupDraft registers the entrants collected from the announcement
	SetupDraft(ctx context.Context, input *SetupDraftInput) (*SetupDraftOutput, error)

	// StartDraft finalizes the draft order and starts the turn loop
	StartDraft(ctx context.Context, input *StartDraftInput) (*StartDraftOutput, error)

	// Pick reserves a single team for the participant's next turn
	Pick(ctx context.Context, input *PickInput) (*PickOutput, error)

	// ReservePicks reserves up to four teams to be consumed in order
	ReservePicks(ctx context.Context, input *ReservePicksInput) (*ReservePicksOutput, error)

	// ClearPicks empties a participant's reservations
	ClearPicks(ctx context.Context, input *ClearPicksInput) (*ClearPicksOutput, error)

	// RandomPick reserves a uniformly random available team
	RandomPick(ctx context.Context, input *RandomPickInput) (*RandomPickOutput, error)

	// SkipTurn flags the current turn to advance without a commit
	SkipTurn(ctx context.Context, input *SkipTurnInput) (*SkipTurnOutput, error)

	// LatePick back-fills a skipped participant's empty round slot
	LatePick(ctx context.Context, input *LatePickInput) (*LatePickOutput, error)

	// AddTeam adds a team to a draft's pool
	AddTeam(ctx context.Context, input *AddTeamInput) (*AddTeamOutput, error)

	// RemoveTeam removes a team and nulls out its committed picks
	RemoveTeam(ctx context.Context, input *RemoveTeamInput) (*RemoveTeamOutput, error)

	// DraftStatus summarizes a session's current state
	DraftStatus(ctx context.Context, input *DraftStatusInput) (*DraftStatusOutput, error)

	// ExportResults renders the draft results as rows and a CSV artifact
	ExportResults(ctx context.Context, input *ExportResultsInput) (*ExportResultsOutput, error)

	// RestoreAll reloads persisted sessions at process start and resumes
	// any that were mid-draft
	RestoreAll(ctx context.Context) (*RestoreAllOutput, error)

	// Close stops all running turn loops
	Close()
}
