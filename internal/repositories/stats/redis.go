package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/starterforten/internal/models"
	"github.com/redis/go-redis/v9"
)

// maxAppendAttempts bounds the optimistic WATCH/MULTI retries
const maxAppendAttempts = 5

// Config holds configuration for the Redis stats repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Key overrides DefaultKey
	Key string
}

// redisRepository implements the Repository interface using a single Redis string key
type redisRepository struct {
	client *redis.Client
	key    string
}

// NewRedis creates a new Redis-backed stats repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilClient
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	return &redisRepository{
		client: cfg.RedisClient,
		key:    key,
	}, nil
}

// LoadSessions reads the session list from Redis
func (r *redisRepository) LoadSessions(ctx context.Context, input *LoadSessionsInput) (*LoadSessionsOutput, error) {
	blob, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &LoadSessionsOutput{
				Sessions: []*models.SessionStats{},
			}, nil
		}
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions, err := decodeSessions(blob)
	if err != nil {
		return nil, err
	}

	return &LoadSessionsOutput{
		Sessions: sessions,
	}, nil
}

// AppendSession rewrites the list with the new session inside a WATCH
// transaction so a concurrent writer cannot drop entries
func (r *redisRepository) AppendSession(ctx context.Context, input *AppendSessionInput) error {
	if input == nil || input.Session == nil {
		return ErrNilSession
	}

	txf := func(tx *redis.Tx) error {
		blob, err := tx.Get(ctx, r.key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to get sessions: %w", err)
		}

		updated, err := appendSession(blob, input.Session)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key, updated, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxAppendAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, r.key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("failed to append session: %w", err)
	}

	return ErrAppendConflict
}
