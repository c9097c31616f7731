package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipantQueue(t *testing.T) {
	p := &Participant{ID: "u1"}

	_, ok := p.QueueHead()
	assert.False(t, ok)

	for i, team := range []string{"1A", "2B", "3C", "4D"} {
		assert.True(t, p.Enqueue(team), "enqueue %d", i)
	}
	assert.False(t, p.Enqueue("5E"), "queue caps at %d", MaxQueueSize)

	head, ok := p.QueueHead()
	assert.True(t, ok)
	assert.Equal(t, "1A", head)

	p.DropQueueHead()
	head, _ = p.QueueHead()
	assert.Equal(t, "2B", head)

	p.DoublePick = true
	p.ClearQueue()
	assert.Empty(t, p.Queue)
	assert.False(t, p.DoublePick, "clearing the queue resets the double-pick flag")
}

func TestParticipantFilledPicks(t *testing.T) {
	p := &Participant{Picks: []string{"1A", "", "3C"}}
	assert.Equal(t, 2, p.FilledPicks())
}

func TestDowntimeWindowContains(t *testing.T) {
	var nilWindow *DowntimeWindow
	assert.False(t, nilWindow.Contains(3))

	same := &DowntimeWindow{StartHour: 5, EndHour: 5}
	assert.False(t, same.Contains(5), "equal hours mean no window")

	day := &DowntimeWindow{StartHour: 9, EndHour: 17}
	assert.True(t, day.Contains(9))
	assert.True(t, day.Contains(16))
	assert.False(t, day.Contains(17))
	assert.False(t, day.Contains(3))

	overnight := &DowntimeWindow{StartHour: 23, EndHour: 7}
	assert.True(t, overnight.Contains(23))
	assert.True(t, overnight.Contains(2))
	assert.False(t, overnight.Contains(7))
	assert.False(t, overnight.Contains(12))
}
