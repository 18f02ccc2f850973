package ports

import (
	"context"
	"time"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
)

// CreateTaskInput carries the validated fields of a new task. An empty
// Status means the default.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      domain.TaskStatus
}

// TaskService defines the use cases for tasks. Update, Delete and Get return
// (nil, nil) for an unknown id.
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, q query.ListQuery) (query.Result[domain.Task], error)
}
