package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/models"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := models.Session{ID: "sess-1", Token: "tok", Role: models.RoleSchool, SubjectID: "sch-1"}
	require.NoError(t, store.Set(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, models.RoleSchool, got.Role)

	require.NoError(t, store.Clear(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionExpired.Code, appErrors.FromError(err).Code)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, models.Session{ID: "sess-1", Token: "tok"}))

	first, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	first.Token = "mutated"

	second, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "tok", second.Token)
}

func TestServiceCreateNotifiesSubscribers(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop())

	var events []Event
	svc.Subscribe(func(ev Event) { events = append(events, ev) })

	sess, err := svc.Create(context.Background(), "tok", models.RoleTeacher, "tch-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, sess.ID, events[0].SessionID)
	assert.Equal(t, models.RoleTeacher, events[0].Role)
	assert.False(t, events[0].Cleared)

	require.NoError(t, svc.Clear(context.Background(), sess.ID))
	require.Len(t, events, 2)
	assert.True(t, events[1].Cleared)
}

func TestServiceClearUnknownSessionIsNotAnError(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop())
	assert.NoError(t, svc.Clear(context.Background(), "missing"))
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "sch-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("platform-secret"))
	require.NoError(t, err)

	got, ok := TokenExpiry(signed)
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	_, ok = TokenExpiry("opaque-token")
	assert.False(t, ok)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "sch-1"}).
		SignedString([]byte("platform-secret"))
	require.NoError(t, err)
	_, ok = TokenExpiry(noExp)
	assert.False(t, ok)
}
