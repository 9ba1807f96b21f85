package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/repository"
)

type chatService struct {
	bot      *chatbot.Bot
	sessions repository.SessionRepo
	locks    *keyedMutex
	logger   *zap.Logger
	observer UseCaseObserver
}

// NewChatService creates a ChatService. A nil logger discards logs.
func NewChatService(
	bot *chatbot.Bot,
	sessions repository.SessionRepo,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &chatService{
		bot:      bot,
		sessions: sessions,
		locks:    newKeyedMutex(),
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *chatService) Start(ctx context.Context) (*SessionView, error) {
	return s.Initialize(ctx, uuid.NewString())
}

func (s *chatService) Initialize(ctx context.Context, id string) (view *SessionView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"session_id": id}
	defer func() { observe(ctx, s.observer, "initialize-session", startedAt, fields, err) }()

	unlock := s.locks.Lock(id)
	defer unlock()

	st, err := s.sessions.Get(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		st = chatbot.NewConversationState(id)
	case err != nil:
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if st.Initialize() {
		fields["created"] = true
		if err = s.sessions.Save(ctx, st); err != nil {
			return nil, fmt.Errorf("saving session: %w", err)
		}
		s.sessionLogger(id).Info("session started")
	}
	return &SessionView{State: st, Content: s.bot.Render(st)}, nil
}

func (s *chatService) Ask(ctx context.Context, id, text string) (*chatbot.Reply, error) {
	return s.turn(ctx, id, "ask", func(st *chatbot.ConversationState) chatbot.Reply {
		return s.bot.HandleText(st, text)
	})
}

func (s *chatService) Press(ctx context.Context, id, tag string) (*chatbot.Reply, error) {
	return s.turn(ctx, id, "press", func(st *chatbot.ConversationState) chatbot.Reply {
		return s.bot.HandleButton(st, tag)
	})
}

// turn loads a session, applies one exchange and stores the result while
// holding the session's lock.
func (s *chatService) turn(ctx context.Context, id, name string, apply func(*chatbot.ConversationState) chatbot.Reply) (reply *chatbot.Reply, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"session_id": id}
	defer func() { observe(ctx, s.observer, name, startedAt, fields, err) }()

	unlock := s.locks.Lock(id)
	defer unlock()

	st, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	r := apply(st)
	if err = s.sessions.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	fields["kind"] = string(r.Kind)
	fields["stage"] = string(st.Stage)
	s.sessionLogger(id).Debug("turn handled",
		zap.String("kind", string(r.Kind)),
		zap.String("stage", string(st.Stage)),
		zap.Int("transcript_len", len(st.Transcript)),
	)
	return &r, nil
}

func (s *chatService) Get(ctx context.Context, id string) (*SessionView, error) {
	st, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SessionView{State: st, Content: s.bot.Render(st)}, nil
}

func (s *chatService) End(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.sessions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return fmt.Errorf("ending session: %w", err)
	}
	s.sessionLogger(id).Info("session ended")
	return nil
}

func (s *chatService) load(ctx context.Context, id string) (*chatbot.ConversationState, error) {
	st, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return st, nil
}

func (s *chatService) sessionLogger(id string) *zap.Logger {
	return s.logger.With(zap.String("session_id", id))
}
