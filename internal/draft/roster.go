package draft

import (
	"sort"

	"github.com/jnairn/vexdraft/internal/models"
)

// Roster is the participant registry for one draft session. Participants
// are added as entrants during setup and receive positions when the draft
// order is finalized. Like the ledger, it relies on the owning Session for
// locking.
type Roster struct {
	participants []*models.Participant
	byID         map[string]*models.Participant
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{
		byID: make(map[string]*models.Participant),
	}
}

// Add registers an entrant. Duplicate IDs are rejected.
func (r *Roster) Add(id, name string) error {
	if _, ok := r.byID[id]; ok {
		return ErrParticipantExists
	}
	participant := &models.Participant{
		ID:   id,
		Name: name,
	}
	r.participants = append(r.participants, participant)
	r.byID[id] = participant
	return nil
}

// ByID looks up a participant by platform ID.
func (r *Roster) ByID(id string) (*models.Participant, error) {
	participant, ok := r.byID[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	return participant, nil
}

// ByPosition looks up a participant by assigned draft position.
func (r *Roster) ByPosition(position int) (*models.Participant, error) {
	for _, participant := range r.participants {
		if participant.Position == position {
			return participant, nil
		}
	}
	return nil, ErrParticipantNotFound
}

// All returns every participant in registration order.
func (r *Roster) All() []*models.Participant {
	return r.participants
}

// InPositionOrder returns participants sorted by assigned position.
func (r *Roster) InPositionOrder() []*models.Participant {
	ordered := make([]*models.Participant, len(r.participants))
	copy(ordered, r.participants)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	return ordered
}

// Len returns the number of registered participants.
func (r *Roster) Len() int {
	return len(r.participants)
}

// restoreRoster rebuilds a roster from persisted participant state.
func restoreRoster(participants []*models.Participant) *Roster {
	r := NewRoster()
	for _, p := range participants {
		copied := &models.Participant{
			ID:         p.ID,
			Name:       p.Name,
			Position:   p.Position,
			Queue:      append([]string(nil), p.Queue...),
			Picks:      append([]string(nil), p.Picks...),
			DoublePick: p.DoublePick,
		}
		r.participants = append(r.participants, copied)
		r.byID[copied.ID] = copied
	}
	return r
}
