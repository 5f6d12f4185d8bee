package upstream

import (
	"context"

	"github.com/vidyalink/console-api/internal/models"
)

// LoginResult is the upstream login response.
type LoginResult struct {
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
	ID    string      `json:"id"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	var result LoginResult
	if err := c.post(ctx, "", "/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// checkTokenResult is the /checktoken verdict payload.
type checkTokenResult struct {
	Valid bool `json:"valid"`
}

// CheckToken asks the platform whether the bearer token is still valid.
// A false verdict with a nil error means the token was rejected cleanly.
func (c *Client) CheckToken(ctx context.Context, token string) (bool, error) {
	var result checkTokenResult
	if err := c.get(ctx, token, "/checktoken", nil, &result); err != nil {
		return false, err
	}
	return result.Valid, nil
}

// Logout invalidates the token upstream. Callers clear local session state
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.post(ctx, token, "/logout", nil, nil)
}
