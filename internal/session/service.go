package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/models"
)

// Event describes a session change delivered to subscribers.
type Event struct {
	SessionID string
	Role      models.Role
	Cleared   bool
}

// Listener receives session change events. Listeners must not block.
type Listener func(Event)

// Service is the single owner of session state. All reads and writes go
// through it so that interested components observe changes through
// Subscribe instead of polling shared state.
type Service struct {
	store  Store
	logger *zap.Logger

	mu        sync.RWMutex
	listeners []Listener
}

// NewService constructs a session Service backed by the given store.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Subscribe registers a listener for session create/clear events.
func (s *Service) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Service) notify(ev Event) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()
	for _, l := range listeners {
		l(ev)
	}
}

// Create mints a new session for an authenticated subject and stores it.
func (s *Service) Create(ctx context.Context, token string, role models.Role, subjectID string) (*models.Session, error) {
	sess := models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		Role:      role,
		SubjectID: subjectID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Set(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.String("role", string(role)),
	)
	s.notify(Event{SessionID: sess.ID, Role: role})
	return &sess, nil
}

// Get loads a session by ID. A missing or expired session yields
// ErrSessionExpired from the store.
func (s *Service) Get(ctx context.Context, id string) (*models.Session, error) {
	return s.store.Get(ctx, id)
}

// Clear removes a session and notifies subscribers. Clearing an unknown
// session is not an error.
func (s *Service) Clear(ctx context.Context, id string) error {
	if err := s.store.Clear(ctx, id); err != nil {
		return err
	}
	s.logger.Info("session cleared", zap.String("session_id", id))
	s.notify(Event{SessionID: id, Cleared: true})
	return nil
}
