package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/service"
	"github.com/vidyalink/console-api/internal/session"
	"github.com/vidyalink/console-api/internal/upstream"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

type guardUpstreamStub struct {
	tokenValid bool
	checkErr   error
	checkCalls int
}

func (s *guardUpstreamStub) Login(ctx context.Context, req models.LoginRequest) (*upstream.LoginResult, error) {
	return nil, nil
}

func (s *guardUpstreamStub) CheckToken(ctx context.Context, token string) (bool, error) {
	s.checkCalls++
	return s.tokenValid, s.checkErr
}

func (s *guardUpstreamStub) Logout(ctx context.Context, token string) error {
	return nil
}

func buildGuardedRouter(up *guardUpstreamStub, sessions *session.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authSvc := service.NewAuthService(up, sessions, nil, zap.NewNop())
	r := gin.New()
	guarded := r.Group("", AuthGuard(authSvc))
	guarded.GET("/inside", func(c *gin.Context) {
		sess, _ := c.Get(ContextSessionKey)
		c.JSON(http.StatusOK, gin.H{"role": sess.(*models.Session).Role})
	})
	return r
}

func redirectTarget(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Meta map[string]string `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Meta["redirect"]
}

func TestAuthGuardNoSessionRedirectsWithoutUpstreamCall(t *testing.T) {
	up := &guardUpstreamStub{tokenValid: true}
	router := buildGuardedRouter(up, session.NewService(session.NewMemoryStore(), zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/inside", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, LoginRoute, redirectTarget(t, w.Body.Bytes()))
	assert.Equal(t, 0, up.checkCalls)
}

func TestAuthGuardValidSessionPasses(t *testing.T) {
	up := &guardUpstreamStub{tokenValid: true}
	sessions := session.NewService(session.NewMemoryStore(), zap.NewNop())
	router := buildGuardedRouter(up, sessions)

	sess, err := sessions.Create(context.Background(), "tok-1", models.RoleTeacher, "tch-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/inside", nil)
	req.Header.Set(SessionHeader, sess.ID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, up.checkCalls)
}

func TestAuthGuardRejectedTokenClearsSessionAndRedirects(t *testing.T) {
	up := &guardUpstreamStub{tokenValid: false}
	sessions := session.NewService(session.NewMemoryStore(), zap.NewNop())
	router := buildGuardedRouter(up, sessions)

	sess, err := sessions.Create(context.Background(), "tok-stale", models.RoleSchool, "sch-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/inside", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sess.ID})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, LoginRoute, redirectTarget(t, w.Body.Bytes()))

	_, err = sessions.Get(context.Background(), sess.ID)
	require.Error(t, err)
}

func TestAuthGuardRevalidationTransportFailureClearsSessionAndRedirects(t *testing.T) {
	up := &guardUpstreamStub{checkErr: appErrors.Clone(appErrors.ErrUpstream, "")}
	sessions := session.NewService(session.NewMemoryStore(), zap.NewNop())
	router := buildGuardedRouter(up, sessions)

	sess, err := sessions.Create(context.Background(), "tok-1", models.RoleTeacher, "tch-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/inside", nil)
	req.Header.Set(SessionHeader, sess.ID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, LoginRoute, redirectTarget(t, w.Body.Bytes()))

	_, err = sessions.Get(context.Background(), sess.ID)
	require.Error(t, err)
}

func TestAuthGuardRevalidatesEveryRequest(t *testing.T) {
	up := &guardUpstreamStub{tokenValid: true}
	sessions := session.NewService(session.NewMemoryStore(), zap.NewNop())
	router := buildGuardedRouter(up, sessions)

	sess, err := sessions.Create(context.Background(), "tok-1", models.RoleAdmin, "adm-1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/inside", nil)
		req.Header.Set(SessionHeader, sess.ID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 3, up.checkCalls)
}

func TestGuestGuardBouncesActiveSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	guest := r.Group("", GuestGuard())
	guest.GET("/login-form", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"form": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/login-form", nil)
	req.Header.Set(SessionHeader, "sess-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, HomeRoute, redirectTarget(t, w.Body.Bytes()))

	// Without a session the guest route serves normally.
	req = httptest.NewRequest(http.MethodGet, "/login-form", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRBACEnforcesRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only",
		func(c *gin.Context) {
			c.Set(ContextSessionKey, &models.Session{ID: "sess-1", Role: models.RoleTeacher})
		},
		RBAC(models.RoleAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
