// Package service hosts the console's domain services. Each service talks
// to the upstream platform through a narrow interface so tests can stub it.
package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/menu"
	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/session"
	"github.com/vidyalink/console-api/internal/upstream"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

type authUpstream interface {
	Login(ctx context.Context, req models.LoginRequest) (*upstream.LoginResult, error)
	CheckToken(ctx context.Context, token string) (bool, error)
	Logout(ctx context.Context, token string) error
}

// AuthService owns login, logout and per-request token revalidation.
type AuthService struct {
	upstream  authUpstream
	sessions  *session.Service
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(up authUpstream, sessions *session.Service, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{upstream: up, sessions: sessions, validator: validate, logger: logger}
}

// Login authenticates against the platform, establishes a session and
// returns it together with the menu resolved for the granted role.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid credentials payload")
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	result, err := s.upstream.Login(ctx, req)
	if err != nil {
		if appErrors.IsUnauthorized(err) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, err
	}

	sess, err := s.sessions.Create(ctx, result.Token, result.Role, result.ID)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		SessionID: sess.ID,
		Role:      sess.Role,
		SubjectID: sess.SubjectID,
		Menu:      menu.ResolverFor(sess.Role),
	}, nil
}

// Verify revalidates a session's token against the platform. Every guarded
// request goes through this; verdicts are never cached, so a token revoked
// upstream locks the console out on the very next request. Any failure,
// including a transport failure reaching the platform, tears the session
// down and resolves to the login redirect.
func (s *AuthService) Verify(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	valid, err := s.upstream.CheckToken(ctx, sess.Token)
	if err != nil || !valid {
		if clearErr := s.sessions.Clear(ctx, sessionID); clearErr != nil {
			s.logger.Warn("failed to clear session after token rejection", zap.Error(clearErr))
		}
		if err != nil {
			s.logger.Warn("token revalidation failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil, appErrors.Clone(appErrors.ErrSessionExpired, "")
	}

	return sess, nil
}

// Logout invalidates the token upstream, then clears the session. The
// upstream call is best effort: local state always goes.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err == nil {
		if upErr := s.upstream.Logout(ctx, sess.Token); upErr != nil {
			s.logger.Warn("upstream logout failed", zap.Error(upErr))
		}
	}
	return s.sessions.Clear(ctx, sessionID)
}

// Menu resolves the navigation tree for a session's role.
func (s *AuthService) Menu(ctx context.Context, sessionID string) ([]models.MenuGroup, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return menu.ResolverFor(sess.Role), nil
}
