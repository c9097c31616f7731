package draft

import (
	"strings"

	"github.com/jnairn/vexdraft/internal/models"
)

// Ledger tracks each draftable team's remaining pick supply. A team whose
// supply reaches zero is no longer pickable but stays listed for audit.
// The ledger is not safe for concurrent use on its own; the owning Session
// serializes access.
type Ledger struct {
	teams  []*models.Team
	byNum  map[string]*models.Team
	seeded bool
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		byNum: make(map[string]*models.Team),
	}
}

// NormalizeTeam upper-cases and trims a team number so lookups are
// case-insensitive.
func NormalizeTeam(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

// Seed populates the ledger, giving every team the same remaining-pick
// count. Duplicate numbers in the input collapse to one entry. Seeding a
// ledger twice is an error.
func (l *Ledger) Seed(numbers []string, picksEach int) error {
	if l.seeded {
		return ErrAlreadySeeded
	}
	if picksEach < 1 {
		picksEach = 1
	}

	for _, number := range numbers {
		number = NormalizeTeam(number)
		if number == "" {
			continue
		}
		if _, ok := l.byNum[number]; ok {
			continue
		}
		team := &models.Team{
			Number:    number,
			Remaining: picksEach,
		}
		l.teams = append(l.teams, team)
		l.byNum[number] = team
	}

	l.seeded = true
	return nil
}

// IsAvailable returns true iff the team exists and still has picks left.
func (l *Ledger) IsAvailable(number string) bool {
	team, ok := l.byNum[NormalizeTeam(number)]
	return ok && team.Remaining > 0
}

// Decrement consumes one pick of the team's supply.
func (l *Ledger) Decrement(number string) error {
	team, ok := l.byNum[NormalizeTeam(number)]
	if !ok || team.Remaining <= 0 {
		return ErrTeamNotAvailable
	}
	team.Remaining--
	return nil
}

// Add inserts a new team with a single remaining pick.
func (l *Ledger) Add(number string) error {
	return l.AddWithPicks(number, 1)
}

// AddWithPicks inserts a new team with the given remaining-pick count.
func (l *Ledger) AddWithPicks(number string, picks int) error {
	number = NormalizeTeam(number)
	if number == "" {
		return ErrTeamNotFound
	}
	if _, ok := l.byNum[number]; ok {
		return ErrTeamExists
	}
	if picks < 1 {
		picks = 1
	}
	team := &models.Team{
		Number:    number,
		Remaining: picks,
	}
	l.teams = append(l.teams, team)
	l.byNum[number] = team
	return nil
}

// Remove deletes a team from the ledger entirely. The caller is
// responsible for cascading the removal into committed picks.
func (l *Ledger) Remove(number string) error {
	number = NormalizeTeam(number)
	if _, ok := l.byNum[number]; !ok {
		return ErrTeamNotFound
	}
	delete(l.byNum, number)
	for i, team := range l.teams {
		if team.Number == number {
			l.teams = append(l.teams[:i], l.teams[i+1:]...)
			break
		}
	}
	return nil
}

// Available returns the numbers of all teams with picks remaining, in
// seed order.
func (l *Ledger) Available() []string {
	available := make([]string, 0, len(l.teams))
	for _, team := range l.teams {
		if team.Remaining > 0 {
			available = append(available, team.Number)
		}
	}
	return available
}

// Teams returns every ledger entry in seed order, exhausted teams included.
func (l *Ledger) Teams() []*models.Team {
	return l.teams
}

// TotalRemaining sums the remaining picks across all teams.
func (l *Ledger) TotalRemaining() int {
	total := 0
	for _, team := range l.teams {
		total += team.Remaining
	}
	return total
}

// Seeded reports whether the ledger has been populated.
func (l *Ledger) Seeded() bool {
	return l.seeded
}

// restoreLedger rebuilds a ledger from persisted team state.
func restoreLedger(teams []*models.Team) *Ledger {
	l := NewLedger()
	for _, team := range teams {
		copied := &models.Team{
			Number:    team.Number,
			Remaining: team.Remaining,
		}
		l.teams = append(l.teams, copied)
		l.byNum[copied.Number] = copied
	}
	l.seeded = len(teams) > 0
	return l
}
