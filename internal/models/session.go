package models

// SessionStatus represents the lifecycle state of a draft session
type SessionStatus string

const (
	// SessionStatusSetup indicates a session is being configured and
	// populated with teams and entrants
	SessionStatusSetup SessionStatus = "setup"

	// SessionStatusDrafting indicates the turn loop is running
	SessionStatusDrafting SessionStatus = "drafting"

	// SessionStatusComplete indicates all rounds have been played
	SessionStatusComplete SessionStatus = "complete"
)

// IsSetup returns true if the session has not started drafting yet
func (s SessionStatus) IsSetup() bool {
	return s == SessionStatusSetup
}

// IsDrafting returns true if the session's turn loop is running
func (s SessionStatus) IsDrafting() bool {
	return s == SessionStatusDrafting
}

// IsComplete returns true if the session has finished all rounds
func (s SessionStatus) IsComplete() bool {
	return s == SessionStatusComplete
}

// DowntimeWindow is an hour range during which timeout-skipping is
// suspended. The range may wrap past midnight (e.g. 23 to 7).
type DowntimeWindow struct {
	// StartHour is the first hour (0-23) of the window
	StartHour int

	// EndHour is the hour the window ends, exclusive
	EndHour int
}

// Contains reports whether the given hour falls inside the window.
func (w *DowntimeWindow) Contains(hour int) bool {
	if w == nil {
		return false
	}
	if w.StartHour == w.EndHour {
		return false
	}
	if w.StartHour < w.EndHour {
		return hour >= w.StartHour && hour < w.EndHour
	}
	// Wraps past midnight
	return hour >= w.StartHour || hour < w.EndHour
}
