package repository

import (
	"context"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/domain"
)

// StationRepo stores the computed station statistics that back the
// knowledge base.
type StationRepo interface {
	// ReplaceAll atomically swaps every stored profile for the given set and
	// records the import.
	ReplaceAll(ctx context.Context, profiles []domain.StationProfile, imp domain.DatasetImport) error
	List(ctx context.Context) ([]domain.StationProfile, error)
	GetByName(ctx context.Context, name string) (*domain.StationProfile, error)
	Count(ctx context.Context) (int, error)
	LastImport(ctx context.Context) (*domain.DatasetImport, error)
}

// SessionRepo holds active conversations. Entries live only as long as the
// session; nothing is kept after it ends or expires.
type SessionRepo interface {
	Get(ctx context.Context, id string) (*chatbot.ConversationState, error)
	Save(ctx context.Context, st *chatbot.ConversationState) error
	Delete(ctx context.Context, id string) error
}
