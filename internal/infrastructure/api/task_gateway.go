package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

// TaskGateway implements ports.TaskGateway over the /tasks endpoints.
// All operations are bearer-authenticated.
type TaskGateway struct {
	c *Client
}

func NewTaskGateway(c *Client) *TaskGateway {
	return &TaskGateway{c: c}
}

func (g *TaskGateway) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Assignee != "" {
		query.Set("assignee", filter.Assignee)
	}

	var tasks []domain.Task
	err := g.c.do(ctx, requestOpts{
		method: http.MethodGet,
		path:   "/tasks",
		query:  query,
		out:    &tasks,
		authed: true,
	})
	return tasks, mapTaskError(err)
}

func (g *TaskGateway) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	var created domain.Task
	err := g.c.do(ctx, requestOpts{
		method: http.MethodPost,
		path:   "/tasks",
		body:   task,
		out:    &created,
		authed: true,
	})
	if err != nil {
		return nil, mapTaskError(err)
	}
	return &created, nil
}

func (g *TaskGateway) Update(ctx context.Context, id string, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	var updated domain.Task
	err := g.c.do(ctx, requestOpts{
		method: http.MethodPut,
		path:   "/tasks/" + url.PathEscape(id),
		body:   task,
		out:    &updated,
		authed: true,
	})
	if err != nil {
		return nil, mapTaskError(err)
	}
	return &updated, nil
}

func (g *TaskGateway) Delete(ctx context.Context, id string) error {
	err := g.c.do(ctx, requestOpts{
		method: http.MethodDelete,
		path:   "/tasks/" + url.PathEscape(id),
		authed: true,
	})
	return mapTaskError(err)
}

func (g *TaskGateway) Activity(ctx context.Context, taskID string) ([]domain.ActivityEntry, error) {
	var entries []domain.ActivityEntry
	err := g.c.do(ctx, requestOpts{
		method: http.MethodGet,
		path:   "/tasks/" + url.PathEscape(taskID) + "/activity",
		out:    &entries,
		authed: true,
	})
	return entries, mapTaskError(err)
}

// mapTaskError converts well-known status codes into domain sentinels so
// callers can use errors.Is instead of inspecting transport details.
func mapTaskError(err error) error {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	switch httpErr.StatusCode {
	case http.StatusNotFound:
		return domain.ErrTaskNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	}
	return err
}
