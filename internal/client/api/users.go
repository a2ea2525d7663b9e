package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

func (c *Client) Register(ctx context.Context, u models.NewUser) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/users", nil, "", u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, "", creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/users/logout", nil, token, nil, nil)
}

// LogoutAll revokes every token of the caller, including token itself.
func (c *Client) LogoutAll(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/users/logoutAll", nil, token, nil, nil)
}

func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteMe removes the caller's account along with all of their tasks.
func (c *Client) DeleteMe(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodDelete, "/users/me", nil, token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
