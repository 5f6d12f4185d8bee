package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/pkg/config"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

type saveRecorder struct {
	mu    sync.Mutex
	saved []string
	done  chan struct{}
}

func newSaveRecorder(expected int) *saveRecorder {
	return &saveRecorder{done: make(chan struct{}, expected)}
}

func (r *saveRecorder) record(value string) func(context.Context) error {
	return func(context.Context) error {
		r.mu.Lock()
		r.saved = append(r.saved, value)
		r.mu.Unlock()
		r.done <- struct{}{}
		return nil
	}
}

func (r *saveRecorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for save")
	}
}

func (r *saveRecorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.saved))
	copy(out, r.saved)
	return out
}

func newTestAutosave(t *testing.T, debounce time.Duration) *AutosaveService {
	t.Helper()
	svc := NewAutosaveService(context.Background(), config.AutosaveConfig{
		Debounce:    debounce,
		Workers:     2,
		SavedExpiry: 50 * time.Millisecond,
	}, zap.NewNop())
	t.Cleanup(svc.Stop)
	return svc
}

func TestAutosaveCoalescesRapidEdits(t *testing.T) {
	svc := newTestAutosave(t, 30*time.Millisecond)
	rec := newSaveRecorder(1)

	// Three edits inside one debounce window produce one write carrying the
	// last snapshot.
	require.NoError(t, svc.Schedule("teacher:1", rec.record("v1")))
	require.NoError(t, svc.Schedule("teacher:1", rec.record("v2")))
	require.NoError(t, svc.Schedule("teacher:1", rec.record("v3")))

	rec.wait(t)
	assert.Equal(t, []string{"v3"}, rec.values())
}

func TestAutosaveDistinctKeysProceedIndependently(t *testing.T) {
	svc := newTestAutosave(t, 10*time.Millisecond)
	rec := newSaveRecorder(2)

	require.NoError(t, svc.Schedule("teacher:1", rec.record("a")))
	require.NoError(t, svc.Schedule("student:1", rec.record("b")))

	rec.wait(t)
	rec.wait(t)
	assert.ElementsMatch(t, []string{"a", "b"}, rec.values())
}

func TestAutosaveStatusLifecycle(t *testing.T) {
	svc := newTestAutosave(t, 5*time.Millisecond)
	rec := newSaveRecorder(1)

	assert.Equal(t, SaveIdle, svc.Status("fee:1").State)

	require.NoError(t, svc.Schedule("fee:1", rec.record("x")))
	assert.Equal(t, SaveSaving, svc.Status("fee:1").State)

	rec.wait(t)
	require.Eventually(t, func() bool {
		return svc.Status("fee:1").State == SaveSaved
	}, time.Second, 5*time.Millisecond)

	// The saved indicator clears itself after the expiry.
	require.Eventually(t, func() bool {
		return svc.Status("fee:1").State == SaveIdle
	}, time.Second, 10*time.Millisecond)
}

func TestAutosaveErrorSurfacesInStatus(t *testing.T) {
	svc := newTestAutosave(t, 5*time.Millisecond)
	done := make(chan struct{})

	require.NoError(t, svc.Schedule("school:1", func(context.Context) error {
		defer close(done)
		return appErrors.Clone(appErrors.ErrUpstream, "something went wrong")
	}))

	<-done
	require.Eventually(t, func() bool {
		return svc.Status("school:1").State == SaveError
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "something went wrong", svc.Status("school:1").Message)
}

func TestAutosaveRequiresKey(t *testing.T) {
	svc := newTestAutosave(t, time.Millisecond)
	err := svc.Schedule("", func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestAutosaveFailedEnqueueDoesNotStickAtSaving(t *testing.T) {
	svc := newTestAutosave(t, time.Millisecond)
	svc.Stop()

	err := svc.Schedule("teacher:1", func(context.Context) error { return nil })
	require.Error(t, err)
	assert.Equal(t, SaveIdle, svc.Status("teacher:1").State)
}
