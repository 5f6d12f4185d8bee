package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects handled jobs and signals each completion on done.
type recorder struct {
	mu   sync.Mutex
	jobs []Job
	done chan Job
}

func newRecorder() *recorder {
	return &recorder{done: make(chan Job, 16)}
}

func (r *recorder) handle(_ context.Context, job Job) error {
	r.mu.Lock()
	r.jobs = append(r.jobs, job)
	r.mu.Unlock()
	r.done <- job
	return nil
}

func (r *recorder) handled() []Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

func waitFor(t *testing.T, ch chan Job) Job {
	t.Helper()
	select {
	case job := <-ch:
		return job
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job")
		return Job{}
	}
}

func TestQueueDebounceCoalescesToLatestPayload(t *testing.T) {
	rec := newRecorder()
	q := NewQueue("test", rec.handle, QueueConfig{Workers: 1, Debounce: 40 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Key: "school:1", Payload: "v1"}))
	require.NoError(t, q.Enqueue(Job{Key: "school:1", Payload: "v2"}))
	require.NoError(t, q.Enqueue(Job{Key: "school:1", Payload: "v3"}))

	job := waitFor(t, rec.done)
	assert.Equal(t, "v3", job.Payload)

	select {
	case extra := <-rec.done:
		t.Fatalf("unexpected second dispatch: %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
	assert.Len(t, rec.handled(), 1)
}

func TestQueueDistinctKeysDispatchIndependently(t *testing.T) {
	rec := newRecorder()
	q := NewQueue("test", rec.handle, QueueConfig{Workers: 2, Debounce: 10 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Key: "school:1", Payload: "a"}))
	require.NoError(t, q.Enqueue(Job{Key: "teacher:2", Payload: "b"}))

	waitFor(t, rec.done)
	waitFor(t, rec.done)

	keys := map[string]bool{}
	for _, job := range rec.handled() {
		keys[job.Key] = true
	}
	assert.True(t, keys["school:1"])
	assert.True(t, keys["teacher:2"])
}

func TestQueueSerializesJobsPerKey(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var order []interface{}

	handler := func(_ context.Context, job Job) error {
		mu.Lock()
		order = append(order, job.Payload)
		first := len(order) == 1
		mu.Unlock()
		if first {
			close(started)
			<-release
		}
		return nil
	}

	q := NewQueue("test", handler, QueueConfig{Workers: 2, Debounce: time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Key: "student:9", Payload: "first"}))
	<-started

	// Arrives while the first job is still running; it must wait.
	require.NoError(t, q.Enqueue(Job{Key: "student:9", Payload: "second"}))
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	assert.Len(t, order, 1)
	mu.Unlock()

	close(release)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 2
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []interface{}{"first", "second"}, order)
	mu.Unlock()
}

func TestQueueFlushBypassesDebounce(t *testing.T) {
	rec := newRecorder()
	q := NewQueue("test", rec.handle, QueueConfig{Workers: 1, Debounce: 5 * time.Second})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Key: "fee:3", Payload: "now"}))
	q.Flush("fee:3")

	job := waitFor(t, rec.done)
	assert.Equal(t, "now", job.Payload)
}

func TestQueueEnqueueRequiresStartAndKey(t *testing.T) {
	rec := newRecorder()
	q := NewQueue("test", rec.handle, QueueConfig{})

	err := q.Enqueue(Job{Key: "school:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not started")

	q.Start(context.Background())
	defer q.Stop()
	err = q.Enqueue(Job{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a key")
}

func TestQueueStopDropsPendingDebouncedJobs(t *testing.T) {
	rec := newRecorder()
	q := NewQueue("test", rec.handle, QueueConfig{Workers: 1, Debounce: 5 * time.Second})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(Job{Key: "school:1", Payload: "never"}))
	q.Stop()

	assert.Empty(t, rec.handled())

	// A stopped queue rejects further enqueues instead of dropping them
	// silently at dispatch.
	err := q.Enqueue(Job{Key: "school:1", Payload: "late"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not started")
}
