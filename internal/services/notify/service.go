package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/jnairn/vexdraft/internal/models"
	"github.com/rs/zerolog/log"
)

const defaultBufferSize = 64

// Config holds configuration for the notify service
type Config struct {
	// BufferSize is the event channel capacity
	BufferSize int
}

// service implements the Service interface with a buffered channel.
// Publishing is fire-and-forget: a full buffer drops the event with a log
// line rather than blocking the turn loop.
type service struct {
	events chan *models.DraftEvent

	mu     sync.Mutex
	closed bool
}

// New creates a new notify service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	size := cfg.BufferSize
	if size <= 0 {
		size = defaultBufferSize
	}
	return &service{
		events: make(chan *models.DraftEvent, size),
	}, nil
}

// Publish enqueues a draft event for delivery
func (s *service) Publish(ctx context.Context, event *models.DraftEvent) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("notify service is closed")
	}

	select {
	case s.events <- event:
		return nil
	default:
		log.Warn().
			Str("session", event.Session).
			Str("type", string(event.Type)).
			Msg("notification buffer full, dropping event")
		return nil
	}
}

// Events exposes the delivery channel
func (s *service) Events() <-chan *models.DraftEvent {
	return s.events
}

// Close shuts the bus down
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}
