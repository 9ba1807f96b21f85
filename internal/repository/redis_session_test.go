package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/ecostats/internal/domain"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("ECOSTATS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ECOSTATS_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "ecostats:session:abc", SessionKey("abc"))
}

func TestRedisSessionRepo_RoundTrip(t *testing.T) {
	client := newTestRedis(t)
	repo := NewRedisSessionRepo(client, time.Minute)
	ctx := context.Background()

	id := uuid.NewString()
	st := seeded(id)
	st.AppendMessage(domain.RoleUser, "temperatura máxima de Halley UIS")
	st.SetStage(domain.StageVariableMenu)
	require.NoError(t, repo.Save(ctx, st))
	t.Cleanup(func() { client.Del(context.Background(), SessionKey(id)) })

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, st.Stage, got.Stage)
	require.Len(t, got.Transcript, 2)
	assert.Equal(t, "temperatura máxima de Halley UIS", got.Transcript[1].Text)

	ttl, err := client.TTL(ctx, SessionKey(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), ErrNotFound)
}
