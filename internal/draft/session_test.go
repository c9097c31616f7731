package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jnairn/vexdraft/internal/models"
)

type SessionTestSuite struct {
	suite.Suite
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) newSession(cfg *SessionConfig) *Session {
	session, err := NewSession(cfg)
	s.Require().NoError(err)
	return session
}

// newFinalized builds a drafting session with the given entrants and team
// pool, finalized with a fixed seed so the order is stable across runs.
func (s *SessionTestSuite) newFinalized(entrants int, rounds int, teams []string) *Session {
	session := s.newSession(&SessionConfig{
		Name:   "test-draft",
		Rounds: rounds,
		Seed:   42,
	})
	s.Require().NoError(session.SetTeamPool(teams))
	for i := 0; i < entrants; i++ {
		id := string(rune('a' + i))
		s.Require().NoError(session.Register("user-"+id, "User "+id))
	}
	s.Require().NoError(session.FinalizeOrder())
	return session
}

func (s *SessionTestSuite) TestNewSessionValidation() {
	_, err := NewSession(nil)
	s.Error(err)

	_, err = NewSession(&SessionConfig{Rounds: 2})
	s.Error(err)

	_, err = NewSession(&SessionConfig{Name: "x", Rounds: 0})
	s.Error(err)
}

func (s *SessionTestSuite) TestSetTeamPoolNormalizesAndDedups() {
	session := s.newSession(&SessionConfig{Name: "x", Rounds: 1, Seed: 1})
	s.Require().NoError(session.SetTeamPool([]string{" 100a", "100A", "", "200B"}))

	s.ErrorIs(session.SetTeamPool([]string{"300C"}), ErrAlreadySeeded)

	s.Require().NoError(session.Register("u1", "One"))
	s.Require().NoError(session.FinalizeOrder())

	numbers := make([]string, 0)
	for _, team := range session.Teams() {
		numbers = append(numbers, team.Number)
	}
	s.ElementsMatch(numbers, []string{"100A", "200B"})
}

func (s *SessionTestSuite) TestRegisterCapAndDuplicates() {
	session := s.newSession(&SessionConfig{Name: "x", Rounds: 1, ParticipantCap: 2, Seed: 1})

	s.Require().NoError(session.Register("u1", "One"))
	s.ErrorIs(session.Register("u1", "One again"), ErrParticipantExists)
	s.Require().NoError(session.Register("u2", "Two"))
	s.ErrorIs(session.Register("u3", "Three"), ErrSessionFull)
}

func (s *SessionTestSuite) TestFinalizeOrderRequiresEntrantsAndTeams() {
	session := s.newSession(&SessionConfig{Name: "x", Rounds: 1, Seed: 1})
	s.ErrorIs(session.FinalizeOrder(), ErrNoParticipants)

	s.Require().NoError(session.Register("u1", "One"))
	s.ErrorIs(session.FinalizeOrder(), ErrNoTeams)

	s.Require().NoError(session.SetTeamPool([]string{"100A"}))
	s.Require().NoError(session.FinalizeOrder())
	s.ErrorIs(session.FinalizeOrder(), ErrOrderFinalized)
	s.ErrorIs(session.Register("u2", "Two"), ErrOrderFinalized)
}

func (s *SessionTestSuite) TestFinalizeOrderIsDeterministicForASeed() {
	build := func() []string {
		session := s.newFinalized(5, 2, []string{"1A", "2B", "3C", "4D", "5E"})
		order := make([]string, 0, 5)
		for _, p := range session.Participants() {
			order = append(order, p.ID)
		}
		return order
	}

	first := build()
	second := build()
	s.Equal(first, second)

	positions := make(map[int]bool)
	session := s.newFinalized(5, 2, []string{"1A", "2B", "3C", "4D", "5E"})
	for _, p := range session.Participants() {
		positions[p.Position] = true
		s.Len(p.Picks, 2)
	}
	s.Len(positions, 5)
}

func (s *SessionTestSuite) TestAllocatePicks() {
	testCases := []struct {
		participants, rounds, teams, want int
	}{
		{participants: 3, rounds: 2, teams: 6, want: 1},
		{participants: 3, rounds: 2, teams: 4, want: 2},
		{participants: 8, rounds: 3, teams: 5, want: 5},
		{participants: 1, rounds: 1, teams: 10, want: 1},
		{participants: 2, rounds: 2, teams: 0, want: 1},
	}
	for _, tc := range testCases {
		s.Equal(tc.want, allocatePicks(tc.participants, tc.rounds, tc.teams))
	}
}

func (s *SessionTestSuite) TestSnapshotRoundTrip() {
	session := s.newFinalized(3, 2, []string{"1A", "2B", "3C"})
	session.SetChannel("chan-1")
	session.LogAnnouncement("msg-1", "🤖", "announce-chan")

	first := session.Participants()[0]
	installed, err := session.SetSinglePick(first.ID, "2B")
	s.Require().NoError(err)
	s.Require().True(installed)
	commit, err := session.TryResolveCurrent()
	s.Require().NoError(err)
	s.Require().NotNil(commit)

	restored, err := RestoreSession(session.Snapshot())
	s.Require().NoError(err)

	s.Equal(session.Name(), restored.Name())
	s.Equal(models.SessionStatusDrafting, restored.Status())
	s.True(restored.Finalized())
	s.Equal("chan-1", restored.ChannelID())

	messageID, emoji, channelID := restored.Announcement()
	s.Equal("msg-1", messageID)
	s.Equal("🤖", emoji)
	s.Equal("announce-chan", channelID)

	// The restored session is on the same turn.
	_, round, position, err := restored.OnClock()
	s.Require().NoError(err)
	s.Equal(1, round)
	s.Equal(2, position)

	// Committed picks and ledger supply survived.
	restoredFirst, err := restored.roster.ByID(first.ID)
	s.Require().NoError(err)
	s.Equal("2B", restoredFirst.Picks[0])
	s.Equal(session.Report().PicksRemaining, restored.Report().PicksRemaining)
}

func (s *SessionTestSuite) TestSnapshotIsDeepCopy() {
	session := s.newFinalized(2, 1, []string{"1A", "2B"})
	snap := session.Snapshot()

	snap.Participants[0].Queue = append(snap.Participants[0].Queue, "1A")
	snap.Teams[0].Remaining = 99

	fresh := session.Snapshot()
	s.Empty(fresh.Participants[0].Queue)
	s.NotEqual(99, fresh.Teams[0].Remaining)
}

func (s *SessionTestSuite) TestRestoreNilSnapshot() {
	_, err := RestoreSession(nil)
	s.Error(err)
}

func (s *SessionTestSuite) TestSetTurnPolicy() {
	session := s.newSession(&SessionConfig{Name: "x", Rounds: 1, Seed: 1})
	session.SetTurnPolicy(10*time.Minute, 2*time.Minute, &models.DowntimeWindow{StartHour: 23, EndHour: 7})

	snap := session.Snapshot()
	s.Equal(10, snap.TurnLimitMin)
	s.Equal(2, snap.WarnBeforeMin)
	s.Require().NotNil(snap.Downtime)
	s.Equal(23, snap.Downtime.StartHour)
}
