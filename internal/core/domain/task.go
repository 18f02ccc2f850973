package domain

import "time"

// TaskStatus is the completion state of a task.
type TaskStatus string

const (
	TaskCompleted    TaskStatus = "COMPLETED"
	TaskNotCompleted TaskStatus = "NOT_COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s == TaskCompleted || s == TaskNotCompleted
}

// Task is a single work item. Tasks are not owned by a user: any
// authenticated caller may read or change any task.
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"dueDate"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskPatch carries the fields of a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *TaskStatus
}

