package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jnairn/vexdraft/internal/clients/roster"
	"github.com/jnairn/vexdraft/internal/handlers/discord"
	"github.com/jnairn/vexdraft/internal/repositories/session"
	draftService "github.com/jnairn/vexdraft/internal/services/draft"
	"github.com/jnairn/vexdraft/internal/services/notify"
)

func main() {
	// .env is optional, real deployments use the environment directly
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	// Initialize repositories
	sessionRepo, err := session.NewRedis(&session.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session repository")
	}

	// Initialize the notification bus
	notifySvc, err := notify.New(&notify.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create notify service")
	}

	// The roster client is optional; drafts can be created with an
	// explicit team list instead of an event SKU.
	var rosterClient draftService.RosterClient
	if token := getEnv("ROBOTEVENTS_TOKEN", ""); token != "" {
		client, err := roster.New(&roster.Config{Token: token})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create roster client")
		}
		rosterClient = client
	}

	// Initialize draft service
	draftSvc, err := draftService.New(&draftService.Config{
		SessionRepo:  sessionRepo,
		RosterClient: rosterClient,
		Notifier:     notifySvc,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create draft service")
	}

	// Reload persisted sessions and resume any running drafts
	if _, err := draftSvc.RestoreAll(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to restore sessions")
	}

	// Get Discord token from environment
	discordToken := getEnv("DISCORD_TOKEN", "")
	if discordToken == "" {
		log.Fatal().Msg("DISCORD_TOKEN environment variable is required")
	}

	// Initialize the Discord event notifier
	notifier, err := discord.New(&discord.Config{
		Token:    discordToken,
		Notifier: notifySvc,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Discord notifier")
	}

	if err := notifier.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start Discord notifier")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	draftSvc.Close()
	notifySvc.Close()
	if err := notifier.Stop(); err != nil {
		log.Error().Err(err).Msg("error stopping Discord notifier")
	}

	log.Info().Msg("bot has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
