package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyalink/console-api/internal/service"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/response"
)

// ContextSessionKey is the gin context key storing the verified session.
const ContextSessionKey = "currentSession"

// SessionCookie is the cookie carrying the console session ID. The
// X-Session-Id header works as a fallback for non-browser clients.
const (
	SessionCookie = "console_session"
	SessionHeader = "X-Session-Id"
)

// LoginRoute is where unauthenticated requests get redirected.
const LoginRoute = "/login"

func sessionID(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	return c.GetHeader(SessionHeader)
}

// AuthGuard protects routes behind a live session. A request without a
// session ID is redirected straight to login with no upstream traffic; a
// request with one revalidates the token against the platform every time,
// and any rejection tears the session down before redirecting.
func AuthGuard(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := sessionID(c)
		if id == "" {
			response.Redirect(c, http.StatusUnauthorized, LoginRoute)
			c.Abort()
			return
		}

		sess, err := authService.Verify(c.Request.Context(), id)
		if err != nil {
			if appErrors.IsUnauthorized(err) {
				response.Redirect(c, http.StatusUnauthorized, LoginRoute)
			} else {
				response.Error(c, err)
			}
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}
