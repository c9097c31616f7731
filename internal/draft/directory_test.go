package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, name string) *Session {
	t.Helper()
	session, err := NewSession(&SessionConfig{Name: name, Rounds: 1, Seed: 1})
	require.NoError(t, err)
	return session
}

func TestDirectory_AddGetRemove(t *testing.T) {
	directory := NewDirectory()

	session := newTestSession(t, "alpha")
	require.NoError(t, directory.Add(session))
	assert.ErrorIs(t, directory.Add(session), ErrSessionExists)

	got, err := directory.Get("alpha")
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = directory.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, directory.Remove("alpha"))
	assert.ErrorIs(t, directory.Remove("alpha"), ErrSessionNotFound)
	assert.Zero(t, directory.Len())
}

func TestDirectory_NamesSorted(t *testing.T) {
	directory := NewDirectory()
	for _, name := range []string{"gamma", "alpha", "beta"} {
		require.NoError(t, directory.Add(newTestSession(t, name)))
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, directory.Names())
	assert.Equal(t, 3, directory.Len())
}
