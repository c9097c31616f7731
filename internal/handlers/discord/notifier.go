// Package discord delivers draft turn-loop events to Discord channels.
package discord

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jnairn/vexdraft/internal/models"
	"github.com/jnairn/vexdraft/internal/services/notify"
)

// Notifier drains draft events and posts them to the channels the drafts
// run in
type Notifier struct {
	session  *discordgo.Session
	notifier notify.Service

	once sync.Once
	done chan struct{}
}

// Config holds the configuration for the notifier
type Config struct {
	// Discord bot token
	Token string

	// Notifier is the event source to drain
	Notifier notify.Service
}

// New creates a new Discord notifier
func New(cfg *Config) (*Notifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}
	if cfg.Notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &Notifier{
		session:  session,
		notifier: cfg.Notifier,
		done:     make(chan struct{}),
	}, nil
}

// Start opens the Discord connection and begins delivering events
func (n *Notifier) Start() error {
	if err := n.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	go n.deliver()

	log.Info().Msg("discord notifier started")
	return nil
}

// Stop closes the Discord connection
func (n *Notifier) Stop() error {
	n.once.Do(func() { close(n.done) })
	return n.session.Close()
}

func (n *Notifier) deliver() {
	events := n.notifier.Events()
	for {
		select {
		case <-n.done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			n.send(event)
		}
	}
}

func (n *Notifier) send(event *models.DraftEvent) {
	if event == nil || event.ChannelID == "" {
		return
	}

	content := formatEvent(event)
	if content == "" {
		return
	}

	if _, err := n.session.ChannelMessageSend(event.ChannelID, content); err != nil {
		log.Error().
			Err(err).
			Str("channel", event.ChannelID).
			Str("type", string(event.Type)).
			Msg("failed to deliver draft event")
	}
}

func formatEvent(event *models.DraftEvent) string {
	mention := event.ParticipantName
	if event.ParticipantID != "" {
		mention = fmt.Sprintf("<@%s>", event.ParticipantID)
	}

	switch event.Type {
	case models.EventTurnStarted:
		return fmt.Sprintf("%s is on the clock! (round %d, pick %d)",
			mention, event.Round, event.Position)
	case models.EventTurnWarning:
		return fmt.Sprintf("%s your turn is running out of time!", mention)
	case models.EventPickCommitted:
		return fmt.Sprintf("%s drafted **%s** (round %d, pick %d)",
			event.ParticipantName, event.Team, event.Round, event.Position)
	case models.EventAutoPick:
		return fmt.Sprintf("%s ran out of time and was given **%s** (round %d, pick %d)",
			event.ParticipantName, event.Team, event.Round, event.Position)
	case models.EventTurnSkipped:
		return fmt.Sprintf("%s's turn was skipped (round %d, pick %d)",
			event.ParticipantName, event.Round, event.Position)
	case models.EventRoundComplete:
		return fmt.Sprintf("Round %d is complete!", event.Round)
	case models.EventDraftComplete:
		return fmt.Sprintf("The **%s** draft is complete! Thanks for playing.", event.Session)
	default:
		return ""
	}
}
