package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyalink/console-api/internal/middleware"
	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/service"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/response"
)

// AuthHandler wires login, logout, profile and menu resolution to HTTP routes.
type AuthHandler struct {
	auth   *service.AuthService
	scopes *service.ScopeResolver
}

// NewAuthHandler constructs a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, scopes *service.ScopeResolver) *AuthHandler {
	return &AuthHandler{auth: auth, scopes: scopes}
}

// Login godoc
// @Summary Authenticate against the school platform
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, result.SessionID, 0, "/", "", false, true)
	response.JSON(c, http.StatusOK, result)
}

// Logout godoc
// @Summary End the session
// @Tags Auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), sess.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	response.NoContent(c)
}

// Menu godoc
// @Summary Resolve the navigation tree for the session role
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /menu [get]
func (h *AuthHandler) Menu(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	groups, err := h.auth.Menu(c.Request.Context(), sess.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// Session godoc
// @Summary Describe the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, sess)
}

// Profile godoc
// @Summary The signed-in actor's own record for the header block
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	profile, err := h.scopes.Profile(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}
