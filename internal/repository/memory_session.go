package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/ecostats/internal/chatbot"
)

type memoryEntry struct {
	state     *chatbot.ConversationState
	expiresAt time.Time
}

// MemorySessionRepo keeps sessions in process memory. Idle sessions expire
// after ttl; a zero ttl keeps them until deleted.
type MemorySessionRepo struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemorySessionRepo creates an empty MemorySessionRepo.
func NewMemorySessionRepo(ttl time.Duration) *MemorySessionRepo {
	return &MemorySessionRepo{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *MemorySessionRepo) Get(_ context.Context, id string) (*chatbot.ConversationState, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if ok && r.expired(e) {
		r.mu.Lock()
		// Re-check under the write lock; a concurrent Save may have refreshed it.
		if cur, still := r.entries[id]; still && r.expired(cur) {
			delete(r.entries, id)
			ok = false
		} else {
			e, ok = cur, still
		}
		r.mu.Unlock()
	}
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return e.state.Clone(), nil
}

func (r *MemorySessionRepo) Save(_ context.Context, st *chatbot.ConversationState) error {
	e := memoryEntry{state: st.Clone()}
	if r.ttl > 0 {
		e.expiresAt = r.now().Add(r.ttl)
	}
	r.mu.Lock()
	r.entries[st.ID] = e
	r.mu.Unlock()
	return nil
}

func (r *MemorySessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	delete(r.entries, id)
	return nil
}

// Len reports how many live sessions are held.
func (r *MemorySessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, e := range r.entries {
		if !r.expired(e) {
			n++
		}
	}
	return n
}

func (r *MemorySessionRepo) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt)
}
