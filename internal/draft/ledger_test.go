package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_SeedAndAvailability(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Seed([]string{"1234a", " 5678B ", "1234A"}, 2))

	// Duplicates collapse after normalization.
	assert.Len(t, ledger.Teams(), 2)
	assert.True(t, ledger.IsAvailable("1234A"))
	assert.True(t, ledger.IsAvailable("5678b"))
	assert.False(t, ledger.IsAvailable("9999Z"))
	assert.Equal(t, 4, ledger.TotalRemaining())
}

func TestLedger_SeedTwiceFails(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Seed([]string{"100A"}, 1))
	assert.ErrorIs(t, ledger.Seed([]string{"200B"}, 1), ErrAlreadySeeded)
}

func TestLedger_SeedClampsPicksToOne(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Seed([]string{"100A"}, 0))
	assert.Equal(t, 1, ledger.TotalRemaining())
}

func TestLedger_DecrementToExhaustion(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Seed([]string{"100A"}, 2))

	require.NoError(t, ledger.Decrement("100A"))
	assert.True(t, ledger.IsAvailable("100A"))

	require.NoError(t, ledger.Decrement("100a"))
	assert.False(t, ledger.IsAvailable("100A"))
	assert.Empty(t, ledger.Available())

	// The team stays on the books at zero; it can never go negative.
	assert.ErrorIs(t, ledger.Decrement("100A"), ErrTeamNotAvailable)
	assert.Len(t, ledger.Teams(), 1)
	assert.Zero(t, ledger.TotalRemaining())
}

func TestLedger_DecrementUnknownTeam(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Seed([]string{"100A"}, 1))
	assert.ErrorIs(t, ledger.Decrement("404X"), ErrTeamNotAvailable)
}

func TestLedger_AddAndRemove(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Seed([]string{"100A"}, 3))

	require.NoError(t, ledger.AddWithPicks("200b", 3))
	assert.True(t, ledger.IsAvailable("200B"))
	assert.ErrorIs(t, ledger.AddWithPicks("200B", 3), ErrTeamExists)

	require.NoError(t, ledger.Remove("100a"))
	assert.False(t, ledger.IsAvailable("100A"))
	assert.ErrorIs(t, ledger.Remove("100A"), ErrTeamNotFound)
	assert.Equal(t, 3, ledger.TotalRemaining())
}

func TestNormalizeTeam(t *testing.T) {
	assert.Equal(t, "1234A", NormalizeTeam("  1234a "))
	assert.Equal(t, "", NormalizeTeam("   "))
}
