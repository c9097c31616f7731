package notify

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/jnairn/vexdraft/internal/services/notify Service

import (
	"context"

	"github.com/jnairn/vexdraft/internal/models"
)

// Service is the notification event bus between the draft core and
// whatever front-end delivers messages. The core publishes; a single
// consumer drains Events.
type Service interface {
	// Publish enqueues a draft event for delivery
	Publish(ctx context.Context, event *models.DraftEvent) error

	// Events exposes the delivery channel
	Events() <-chan *models.DraftEvent

	// Close shuts the bus down; pending events are discarded by the
	// consumer seeing the channel close
	Close()
}
