package service

import (
	"context"
	"time"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/domain"
	"github.com/alexanderramin/ecostats/internal/knowledge"
)

// StationService owns the station reference data.
type StationService interface {
	// Load returns the stored profiles, seeding the store from the configured
	// dataset when it is empty.
	Load(ctx context.Context) ([]domain.StationProfile, error)
	// Knowledge builds a knowledge base from Load.
	Knowledge(ctx context.Context) (*knowledge.Base, error)
	// Import recomputes statistics from a CSV file and replaces the store.
	Import(ctx context.Context, path string) (*domain.DatasetImport, error)
	// MonthlyProfile computes one station's statistics over one month.
	MonthlyProfile(ctx context.Context, station string, month time.Month) (*domain.StationProfile, error)
	LastImport(ctx context.Context) (*domain.DatasetImport, error)
	HasData(ctx context.Context) (bool, error)
}

// SessionView is a conversation together with the content of its stage.
type SessionView struct {
	State   *chatbot.ConversationState `json:"state"`
	Content chatbot.Content            `json:"content"`
}

// ChatService runs conversations. Turns of one session are serialized;
// different sessions never block each other.
type ChatService interface {
	Start(ctx context.Context) (*SessionView, error)
	Initialize(ctx context.Context, id string) (*SessionView, error)
	Ask(ctx context.Context, id, text string) (*chatbot.Reply, error)
	Press(ctx context.Context, id, tag string) (*chatbot.Reply, error)
	Get(ctx context.Context, id string) (*SessionView, error)
	End(ctx context.Context, id string) error
}
