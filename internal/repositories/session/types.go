package session

import "github.com/jnairn/vexdraft/internal/models"

type SaveSessionInput struct {
	Snapshot *models.SessionSnapshot
}

type GetSessionInput struct {
	Name string
}

type ListSessionsInput struct {
}

type ListSessionsOutput struct {
	Snapshots []*models.SessionSnapshot
}

type DeleteSessionInput struct {
	Name string
}
