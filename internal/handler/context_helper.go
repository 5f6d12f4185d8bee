package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vidyalink/console-api/internal/middleware"
	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/service"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

var errNoSession error = appErrors.Clone(appErrors.ErrUnauthorized, "no session in context")

func sessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return sess
}

// resolveScope derives the actor's data boundary for the request.
func resolveScope(c *gin.Context, resolver *service.ScopeResolver) (*models.Session, service.Scope, error) {
	sess := sessionFromContext(c)
	if sess == nil {
		return nil, service.Scope{}, errNoSession
	}
	scope, err := resolver.Resolve(c.Request.Context(), sess)
	if err != nil {
		return sess, service.Scope{}, err
	}
	return sess, scope, nil
}
