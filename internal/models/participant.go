package models

// MaxQueueSize is the maximum number of reserved picks a participant can
// hold at once
const MaxQueueSize = 4

// Participant represents a drafter registered in a draft session
type Participant struct {
	// ID is the platform-assigned user ID of the participant
	ID string

	// Name is the display name of the participant
	Name string

	// Position is the participant's slot in the turn order (1..N),
	// assigned once when the draft order is finalized
	Position int

	// Queue holds reserved-but-not-yet-committed team numbers in
	// insertion order; the head is consumed first
	Queue []string

	// Picks holds the committed team number per round; index 0 is
	// round 1 and an empty string is an unfilled slot
	Picks []string

	// DoublePick reserves multi-pick-per-turn semantics; cleared on
	// every committed pick
	DoublePick bool
}

// QueueHead returns the next reserved team, if any.
func (p *Participant) QueueHead() (string, bool) {
	if len(p.Queue) == 0 {
		return "", false
	}
	return p.Queue[0], true
}

// DropQueueHead removes the head entry and shifts the rest forward.
func (p *Participant) DropQueueHead() {
	if len(p.Queue) == 0 {
		return
	}
	p.Queue = p.Queue[1:]
}

// Enqueue appends a team to the queue. Returns false when the queue is
// already full.
func (p *Participant) Enqueue(team string) bool {
	if len(p.Queue) >= MaxQueueSize {
		return false
	}
	p.Queue = append(p.Queue, team)
	return true
}

// ClearQueue empties the queue and resets the double-pick flag.
func (p *Participant) ClearQueue() {
	p.Queue = nil
	p.DoublePick = false
}

// FilledPicks counts the rounds this participant has a committed pick for.
func (p *Participant) FilledPicks() int {
	count := 0
	for _, pick := range p.Picks {
		if pick != "" {
			count++
		}
	}
	return count
}
