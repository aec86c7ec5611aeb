package api

import (
	"context"
	"net/http"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// Register creates a new account. On success the issued token and user
// are written to the session store so subsequent calls are
// authenticated.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := c.session.Set(resp.Token, &resp.User); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// Login authenticates an existing account and stores the credentials.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := c.session.Set(resp.Token, &resp.User); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// Logout drops the stored credentials. Purely local; the backend keeps
// no session state beyond the token's own expiry.
func (c *Client) Logout() error {
	return c.session.Clear()
}
