package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job carries the latest payload queued under a key.
type Job struct {
	ID       string
	Key      string
	Payload  interface{}
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures debounce and worker behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	Debounce   time.Duration
	Logger     *zap.Logger
}

// Queue is a keyed, debounced dispatcher backed by goroutines. Successive
// enqueues under the same key within the debounce window coalesce into one
// job carrying the latest payload, and jobs for a given key never run
// concurrently: an edit arriving while that key's job is in flight waits for
// it to finish. Jobs for distinct keys proceed independently.
type Queue struct {
	name    string
	handler Handler

	workers    int
	bufferSize int
	debounce   time.Duration
	logger     *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	lanes   map[string]*lane
}

// lane tracks debounce and in-flight state for one key.
type lane struct {
	pending  *Job
	timer    *time.Timer
	inFlight bool
}

// NewQueue builds a new queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:       name,
		handler:    handler,
		workers:    cfg.Workers,
		bufferSize: cfg.BufferSize,
		debounce:   cfg.Debounce,
		logger:     cfg.Logger,
		jobs:       make(chan Job, cfg.BufferSize),
		lanes:      make(map[string]*lane),
	}
}

// Start begins worker consumption. Safe to call once.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i + 1)
	}
	q.started = true
	q.logger.Sugar().Infow("queue started", "queue", q.name, "workers", q.workers, "debounce", q.debounce)
}

// Stop cancels workers and waits for them to exit. Pending debounced jobs are
// dropped; anything already dispatched finishes.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	for _, l := range q.lanes {
		if l.timer != nil {
			l.timer.Stop()
		}
	}
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
	q.mu.Lock()
	q.started = false
	q.mu.Unlock()
	q.logger.Sugar().Infow("queue stopped", "queue", q.name)
}

// Enqueue records the latest payload for a key and (re)arms its debounce
// timer. The job actually dispatches once the window elapses with no newer
// payload for that key.
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if job.Key == "" {
		return fmt.Errorf("queue %s: job requires a key", q.name)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	l, ok := q.lanes[job.Key]
	if !ok {
		l = &lane{}
		q.lanes[job.Key] = l
	}
	l.pending = &job
	if l.timer != nil {
		l.timer.Stop()
	}
	key := job.Key
	l.timer = time.AfterFunc(q.debounce, func() { q.flush(key) })
	return nil
}

// Flush forces immediate dispatch of a key's pending job, bypassing the
// debounce window. Used at shutdown and by tests.
func (q *Queue) Flush(key string) {
	q.mu.Lock()
	if l, ok := q.lanes[key]; ok && l.timer != nil {
		l.timer.Stop()
	}
	q.mu.Unlock()
	q.flush(key)
}

func (q *Queue) flush(key string) {
	q.mu.Lock()
	l, ok := q.lanes[key]
	if !ok || l.pending == nil || l.inFlight {
		// In-flight keys re-flush on completion.
		q.mu.Unlock()
		return
	}
	job := *l.pending
	l.pending = nil
	l.inFlight = true
	ctx := q.ctx
	q.mu.Unlock()

	select {
	case <-ctx.Done():
		q.finish(key)
	case q.jobs <- job:
	}
}

func (q *Queue) finish(key string) {
	q.mu.Lock()
	l, ok := q.lanes[key]
	if ok {
		l.inFlight = false
		ok = l.pending != nil
	}
	q.mu.Unlock()
	if ok {
		q.flush(key)
	}
}

func (q *Queue) worker(workerID int) {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			if err := q.handler(q.ctx, job); err != nil {
				q.logger.Sugar().Warnw("job failed", "queue", q.name, "job_id", job.ID, "key", job.Key, "error", err)
			}
			q.finish(job.Key)
		}
	}
}
