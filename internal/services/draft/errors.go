package draft

import "errors"

// Define errors
var (
	ErrPermissionDenied = errors.New("requester is not the draft admin")
	ErrDraftRunning     = errors.New("draft turn loop already running")
	ErrMissingChannel   = errors.New("a channel is required to start the draft")
	ErrNoTeamSource     = errors.New("no teams given and no roster client configured")
)
