package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyalink/console-api/pkg/response"
)

// HomeRoute is where already-authenticated requests get sent from
// guest-only routes.
const HomeRoute = "/dashboard"

// GuestGuard keeps sessions away from guest-only routes such as the login
// form. Presence of a session ID is enough to bounce; no upstream
// revalidation happens here, the guarded routes do that themselves.
func GuestGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionID(c) != "" {
			response.Redirect(c, http.StatusConflict, HomeRoute)
			c.Abort()
			return
		}
		c.Next()
	}
}
