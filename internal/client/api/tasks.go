package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

func (c *Client) CreateTask(ctx context.Context, token string, t models.NewTask) (*models.Task, error) {
	var res models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, token, t, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListTasks(ctx context.Context, token string, q models.TaskQuery) ([]models.Task, error) {
	res := []models.Task{}
	if err := c.do(ctx, http.MethodGet, "/tasks", q.Values(), token, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) GetTask(ctx context.Context, token, id string) (*models.Task, error) {
	var res models.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateTask sends only the fields set in p.
func (c *Client) UpdateTask(ctx context.Context, token, id string, p models.TaskPatch) (*models.Task, error) {
	body := map[string]any{}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.Completed != nil {
		body["completed"] = *p.Completed
	}

	var res models.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id), nil, token, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteTask(ctx context.Context, token, id string) (*models.Task, error) {
	var res models.Task
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}
