package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jnairn/vexdraft/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix = "draft:"
	sessionSetKey    = "draft_sessions"
)

// ErrSessionNotFound is returned when a session snapshot is not found
var ErrSessionNotFound = errors.New("session not found")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveSession persists a session snapshot to Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Snapshot == nil {
		return errors.New("input and snapshot cannot be nil")
	}
	if input.Snapshot.Name == "" {
		return errors.New("snapshot name cannot be empty")
	}

	// Marshal the snapshot to JSON
	snapJSON, err := json.Marshal(input.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Save the snapshot and index it in one transaction
	pipe := r.client.Pipeline()

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Snapshot.Name)
	pipe.Set(ctx, sessionKey, snapJSON, 0) // Sessions persist until deleted
	pipe.SAdd(ctx, sessionSetKey, input.Snapshot.Name)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session snapshot by name from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.SessionSnapshot, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and session name cannot be empty")
	}

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Name)
	snapJSON, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var snap models.SessionSnapshot
	if err := json.Unmarshal([]byte(snapJSON), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &snap, nil
}

// ListSessions retrieves all persisted session snapshots from Redis
func (r *redisRepository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	names, err := r.client.SMembers(ctx, sessionSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session names: %w", err)
	}

	if len(names) == 0 {
		return &ListSessionsOutput{
			Snapshots: []*models.SessionSnapshot{},
		}, nil
	}

	// Fetch all snapshots in one pipeline
	pipe := r.client.Pipeline()
	commands := make(map[string]*redis.StringCmd, len(names))
	for _, name := range names {
		sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, name)
		commands[name] = pipe.Get(ctx, sessionKey)
	}

	_, err = pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	snapshots := make([]*models.SessionSnapshot, 0, len(names))
	for name, cmd := range commands {
		snapJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Session was deleted between listing and fetching
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", name, err)
		}

		var snap models.SessionSnapshot
		if err := json.Unmarshal([]byte(snapJSON), &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", name, err)
		}

		snapshots = append(snapshots, &snap)
	}

	return &ListSessionsOutput{
		Snapshots: snapshots,
	}, nil
}

// DeleteSession removes a session snapshot from Redis
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.Name == "" {
		return errors.New("input and session name cannot be empty")
	}

	pipe := r.client.Pipeline()

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Name)
	pipe.Del(ctx, sessionKey)
	pipe.SRem(ctx, sessionSetKey, input.Name)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
