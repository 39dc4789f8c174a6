package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore persists the impersonation whitelist in Redis, one key per
// session, with a TTL so abandoned sessions age out.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store over an existing Redis client. A zero ttl
// defaults to 12 hours.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(sessionID string) string {
	return "console:impersonation:" + sessionID
}

// SaveImpersonation writes the whitelisted state.
func (s *RedisStore) SaveImpersonation(ctx context.Context, sessionID string, state ImpersonationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode impersonation state: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save impersonation state: %w", err)
	}
	return nil
}

// LoadImpersonation returns the persisted state, nil when none exists.
func (s *RedisStore) LoadImpersonation(ctx context.Context, sessionID string) (*ImpersonationState, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load impersonation state: %w", err)
	}
	var state ImpersonationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode impersonation state: %w", err)
	}
	return &state, nil
}

// ClearImpersonation deletes the persisted state.
func (s *RedisStore) ClearImpersonation(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear impersonation state: %w", err)
	}
	return nil
}
