package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/ports"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
	"github.com/shivam-singh-au17/assessment-sassy/internal/metrics"
)

var ErrInvalidStatus = errors.New("invalid task status")

var (
	taskSearchFields = []string{"title", "description"}
	taskProjection   = []string{"_id", "title", "description", "dueDate", "status", "createdAt", "updatedAt"}
)

type TaskService struct {
	repo   ports.TaskRepository
	tasks  *lister[domain.Task]
	logger zerolog.Logger
}

// NewTaskService wires a TaskService. cache may be nil to disable list caching.
func NewTaskService(repo ports.TaskRepository, cache ports.ListCache, logger zerolog.Logger) *TaskService {
	return &TaskService{
		repo: repo,
		tasks: &lister[domain.Task]{
			scope:        scopeTasks,
			searchFields: taskSearchFields,
			projection:   taskProjection,
			fetch:        repo.List,
			cache:        cache,
			log:          logger,
		},
		logger: logger,
	}
}

// CreateTask stores a new task. Status defaults to NOT_COMPLETED.
func (s *TaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	status := input.Status
	if status == "" {
		status = domain.TaskNotCompleted
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	now := time.Now().UTC()
	task, err := s.repo.Create(ctx, &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		metrics.TasksWrittenTotal.WithLabelValues("create", "error").Inc()
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksWrittenTotal.WithLabelValues("create", "ok").Inc()
	s.tasks.invalidate(ctx)
	s.logger.Info().Str("task_id", task.ID).Msg("task created")
	return task, nil
}

// UpdateTask applies patch to the task with the given id and returns the
// updated task, or nil when no such task exists.
func (s *TaskService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *patch.Status)
	}

	task, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		metrics.TasksWrittenTotal.WithLabelValues("update", "error").Inc()
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}
	if task == nil {
		metrics.TasksWrittenTotal.WithLabelValues("update", "not_found").Inc()
		s.logger.Debug().Str("task_id", id).Msg("update of unknown task")
		return nil, nil
	}

	metrics.TasksWrittenTotal.WithLabelValues("update", "ok").Inc()
	s.tasks.invalidate(ctx)
	s.logger.Info().Str("task_id", id).Msg("task updated")
	return task, nil
}

// DeleteTask removes the task and returns it, or nil when it did not exist.
func (s *TaskService) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.Delete(ctx, id)
	if err != nil {
		metrics.TasksWrittenTotal.WithLabelValues("delete", "error").Inc()
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to delete task")
		return nil, err
	}
	if task == nil {
		metrics.TasksWrittenTotal.WithLabelValues("delete", "not_found").Inc()
		return nil, nil
	}

	metrics.TasksWrittenTotal.WithLabelValues("delete", "ok").Inc()
	s.tasks.invalidate(ctx)
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return task, nil
}

// GetTask returns the task with the given id, or nil.
func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// ListTasks returns one page of tasks and the size of the filtered set.
func (s *TaskService) ListTasks(ctx context.Context, q query.ListQuery) (query.Result[domain.Task], error) {
	return s.tasks.list(ctx, q)
}
