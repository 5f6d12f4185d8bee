// Package session owns the console's only persisted client state: token,
// role and subject id, kept server-side per session and exposed through a
// single service with explicit get/set/clear and change notification.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vidyalink/console-api/internal/models"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

// Store persists sessions keyed by session ID.
type Store interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Set(ctx context.Context, sess models.Session) error
	Clear(ctx context.Context, id string) error
}

// RedisStore keeps each session in a hash with a TTL.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore constructs a RedisStore.
func NewRedisStore(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "console:session:"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return s.keyPrefix + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	values, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if len(values) == 0 {
		return nil, appErrors.ErrSessionExpired
	}
	sess := &models.Session{
		ID:        id,
		Token:     values["token"],
		Role:      models.Role(values["role"]),
		SubjectID: values["subject_id"],
	}
	if raw, ok := values["created_at"]; ok {
		if ts, parseErr := time.Parse(time.RFC3339, raw); parseErr == nil {
			sess.CreatedAt = ts
		}
	}
	return sess, nil
}

func (s *RedisStore) Set(ctx context.Context, sess models.Session) error {
	key := s.key(sess.ID)
	fields := map[string]interface{}{
		"token":      sess.Token,
		"role":       string(sess.Role),
		"subject_id": sess.SubjectID,
		"created_at": sess.CreatedAt.UTC().Format(time.RFC3339),
	}
	ttl := s.ttl
	if exp, ok := TokenExpiry(sess.Token); ok {
		// Session lifetime never exceeds the token's own expiry.
		if remaining := time.Until(exp); remaining > 0 && (ttl <= 0 || remaining < ttl) {
			ttl = remaining
		}
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session")
	}
	return nil
}

// MemoryStore is the in-process Store used by tests and single-node runs
// without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}
	copied := sess
	return &copied, nil
}

func (s *MemoryStore) Set(ctx context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
