package ports

import (
	"context"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
)

// TaskRepository defines persistence operations for tasks. Lookups by id
// return (nil, nil) when the task does not exist.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, plan query.Plan) (query.Result[domain.Task], error)
}
