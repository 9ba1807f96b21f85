package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alexanderramin/ecostats/internal/chatbot"
)

const sessionKeyPrefix = "ecostats:session:"

// SessionKey returns the Redis key for a session id.
func SessionKey(id string) string {
	return sessionKeyPrefix + id
}

// RedisSessionRepo stores sessions as JSON in Redis. Every save refreshes the
// key's TTL so idle sessions expire on their own.
type RedisSessionRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepo creates a RedisSessionRepo.
func NewRedisSessionRepo(client *redis.Client, ttl time.Duration) *RedisSessionRepo {
	return &RedisSessionRepo{client: client, ttl: ttl}
}

func (r *RedisSessionRepo) Get(ctx context.Context, id string) (*chatbot.ConversationState, error) {
	data, err := r.client.Get(ctx, SessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("reading session %s: %w", id, err)
	}

	var st chatbot.ConversationState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &st, nil
}

func (r *RedisSessionRepo) Save(ctx context.Context, st *chatbot.ConversationState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", st.ID, err)
	}
	if err := r.client.Set(ctx, SessionKey(st.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("writing session %s: %w", st.ID, err)
	}
	return nil
}

func (r *RedisSessionRepo) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, SessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}
