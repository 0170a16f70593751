package ports

import (
	"context"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

// TaskGateway wraps the remote task CRUD and activity-log endpoints.
type TaskGateway interface {
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id string, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	Activity(ctx context.Context, taskID string) ([]domain.ActivityEntry, error)
}

// JobGateway wraps the job-search endpoints.
type JobGateway interface {
	// Search returns results matching keywords; empty keywords lists the
	// most recently fetched jobs.
	Search(ctx context.Context, keywords string) ([]domain.Job, error)
}
