package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/jnairn/vexdraft/internal/repositories/session Repository

import (
	"context"

	"github.com/jnairn/vexdraft/internal/models"
)

// Repository defines the interface for draft session persistence
type Repository interface {
	// SaveSession persists a session snapshot
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session snapshot by name
	GetSession(ctx context.Context, input *GetSessionInput) (*models.SessionSnapshot, error)

	// ListSessions retrieves every persisted session snapshot
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// DeleteSession removes a session snapshot
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error
}
