package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnairn/vexdraft/internal/models"
)

func TestPublishAndDrain(t *testing.T) {
	svc, err := New(&Config{BufferSize: 4})
	require.NoError(t, err)
	defer svc.Close()

	event := &models.DraftEvent{ID: "e1", Type: models.EventTurnStarted}
	require.NoError(t, svc.Publish(context.Background(), event))

	got := <-svc.Events()
	assert.Same(t, event, got)
}

func TestPublishDropsWhenFull(t *testing.T) {
	svc, err := New(&Config{BufferSize: 2})
	require.NoError(t, err)
	defer svc.Close()

	// Nobody is draining; the bus must not block the caller.
	for i := 0; i < 10; i++ {
		err := svc.Publish(context.Background(), &models.DraftEvent{
			ID:   fmt.Sprintf("e%d", i),
			Type: models.EventPickCommitted,
		})
		require.NoError(t, err)
	}

	// Only the buffered events survive.
	assert.Len(t, svc.Events(), 2)
}

func TestPublishNilEvent(t *testing.T) {
	svc, err := New(&Config{})
	require.NoError(t, err)
	defer svc.Close()

	assert.Error(t, svc.Publish(context.Background(), nil))
}

func TestCloseIsIdempotent(t *testing.T) {
	svc, err := New(&Config{})
	require.NoError(t, err)

	svc.Close()
	svc.Close()

	_, ok := <-svc.Events()
	assert.False(t, ok, "events channel closes with the service")
	assert.Error(t, svc.Publish(context.Background(), &models.DraftEvent{ID: "late"}))
}
