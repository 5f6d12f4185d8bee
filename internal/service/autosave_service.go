package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/pkg/config"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/jobs"
)

// SaveState is the persistence indicator for one entity.
type SaveState string

const (
	SaveIdle   SaveState = "idle"
	SaveSaving SaveState = "saving"
	SaveSaved  SaveState = "saved"
	SaveError  SaveState = "error"
)

// SaveStatus is what the status endpoint reports for an entity key.
type SaveStatus struct {
	State   SaveState `json:"state"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

// saveTask carries the deferred write for one enqueued snapshot.
type saveTask struct {
	fn func(ctx context.Context) error
}

// AutosaveService debounces whole-snapshot writes per entity. Each field
// edit enqueues the full current snapshot under the entity's key; rapid
// edits coalesce so only the latest snapshot is written, and writes for one
// entity never overlap. The transient "saved" indicator clears itself after
// the configured expiry.
type AutosaveService struct {
	queue       *jobs.Queue
	savedExpiry time.Duration
	logger      *zap.Logger
	metrics     *MetricsService

	mu       sync.Mutex
	statuses map[string]SaveStatus
	timers   map[string]*time.Timer
}

// NewAutosaveService constructs and starts the save queue.
func NewAutosaveService(ctx context.Context, cfg config.AutosaveConfig, logger *zap.Logger) *AutosaveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AutosaveService{
		savedExpiry: cfg.SavedExpiry,
		logger:      logger,
		statuses:    make(map[string]SaveStatus),
		timers:      make(map[string]*time.Timer),
	}
	s.queue = jobs.NewQueue("autosave", s.handle, jobs.QueueConfig{
		Workers:  cfg.Workers,
		Debounce: cfg.Debounce,
		Logger:   logger,
	})
	s.queue.Start(ctx)
	return s
}

// SetMetrics installs the write counter. Safe to leave unset.
func (s *AutosaveService) SetMetrics(m *MetricsService) {
	s.metrics = m
}

// Stop drains the queue workers.
func (s *AutosaveService) Stop() {
	s.queue.Stop()
}

// Schedule registers the latest snapshot write for an entity key. The fn is
// invoked once the debounce window closes with no newer snapshot.
func (s *AutosaveService) Schedule(key string, fn func(ctx context.Context) error) error {
	if key == "" {
		return appErrors.Clone(appErrors.ErrValidation, "entity key required")
	}
	s.setStatus(key, SaveStatus{State: SaveSaving, At: time.Now().UTC()})
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Key:     key,
		Payload: saveTask{fn: fn},
	})
	if err != nil {
		// A failed enqueue never dispatches, so the key must not sit at
		// "saving" forever.
		s.mu.Lock()
		delete(s.statuses, key)
		s.mu.Unlock()
	}
	return err
}

// Flush forces an entity's pending write to dispatch immediately.
func (s *AutosaveService) Flush(key string) {
	s.queue.Flush(key)
}

// Status reports the current save state for an entity key.
func (s *AutosaveService) Status(key string) SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.statuses[key]; ok {
		return st
	}
	return SaveStatus{State: SaveIdle}
}

func (s *AutosaveService) handle(ctx context.Context, job jobs.Job) error {
	task, ok := job.Payload.(saveTask)
	if !ok || task.fn == nil {
		return appErrors.Clone(appErrors.ErrInternal, "malformed save task")
	}
	if err := task.fn(ctx); err != nil {
		s.metrics.RecordAutosave(false)
		s.setStatus(job.Key, SaveStatus{
			State:   SaveError,
			Message: appErrors.FromError(err).Message,
			At:      time.Now().UTC(),
		})
		return err
	}
	s.metrics.RecordAutosave(true)
	s.setStatus(job.Key, SaveStatus{State: SaveSaved, At: time.Now().UTC()})
	s.expireSaved(job.Key)
	return nil
}

func (s *AutosaveService) setStatus(key string, st SaveStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
	s.statuses[key] = st
}

// expireSaved reverts "saved" to idle after the expiry unless a newer write
// replaced the status in the meantime.
func (s *AutosaveService) expireSaved(key string) {
	if s.savedExpiry <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[key] = time.AfterFunc(s.savedExpiry, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if st, ok := s.statuses[key]; ok && st.State == SaveSaved {
			delete(s.statuses, key)
		}
		delete(s.timers, key)
	})
}
