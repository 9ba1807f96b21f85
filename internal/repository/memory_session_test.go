package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(id string) *chatbot.ConversationState {
	st := chatbot.NewConversationState(id)
	st.Initialize()
	return st
}

func TestMemorySessionRepo_SaveGetDelete(t *testing.T) {
	repo := NewMemorySessionRepo(0)
	ctx := context.Background()

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	st := seeded("s1")
	require.NoError(t, repo.Save(ctx, st))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, got.Transcript, 1)
	assert.Equal(t, domain.StageRoot, got.Stage)

	got.AppendMessage(domain.RoleUser, "hola")
	again, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.Transcript, 1, "callers get a copy")

	require.NoError(t, repo.Delete(ctx, "s1"))
	assert.ErrorIs(t, repo.Delete(ctx, "s1"), ErrNotFound)
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySessionRepo_Expiry(t *testing.T) {
	repo := NewMemorySessionRepo(time.Minute)
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, seeded("s1")))

	now = now.Add(30 * time.Second)
	_, err := repo.Get(ctx, "s1")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, seeded("s1")), "saving refreshes the deadline")
	now = now.Add(45 * time.Second)
	_, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Len())

	now = now.Add(time.Minute)
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, repo.Len())
}

func TestMemorySessionRepo_ConcurrentSessions(t *testing.T) {
	repo := NewMemorySessionRepo(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			st := seeded(id)
			st.AppendMessage(domain.RoleUser, id)
			assert.NoError(t, repo.Save(ctx, st))
			got, err := repo.Get(ctx, id)
			if assert.NoError(t, err) {
				assert.Len(t, got.Transcript, 2)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, repo.Len())
}
