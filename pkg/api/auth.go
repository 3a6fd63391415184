package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sguter90/homenet/pkg/models"
)

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var user models.User
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: req, public: true}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token and stores it
func (c *Client) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	var token models.TokenResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   models.LoginRequest{Username: username, Password: password},
		public: true,
	}, &token)
	if err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.New("login response did not contain an access token")
	}

	if err := c.tokens.SetToken(ctx, token.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return &token, nil
}

// Logout forgets the stored token. The backend keeps no session state.
func (c *Client) Logout(ctx context.Context) error {
	return c.tokens.ClearToken(ctx)
}

// IsAuthenticated reports whether a token is present
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	token, err := c.tokens.Token(ctx)
	return err == nil && token != ""
}

// Token returns the stored bearer token
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.tokens.Token(ctx)
}

// Me returns the authenticated user's profile
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
