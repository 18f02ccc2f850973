package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shivam-singh-au17/assessment-sassy/internal/api/schema"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/ports"
)

const msgInvalidTaskID = "Invalid taskId provided!"

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type taskRequest struct {
	Title       string            `json:"title" example:"Write report"`
	Description string            `json:"description" example:"Quarterly numbers"`
	DueDate     string            `json:"dueDate" example:"2025-01-01"`
	Status      domain.TaskStatus `json:"status,omitempty" enums:"COMPLETED,NOT_COMPLETED"`
}

// taskID returns the :taskId path parameter when it is a well-formed ObjectID.
func taskID(c echo.Context) (string, bool) {
	id := c.Param("taskId")
	return id, primitive.IsValidObjectID(id)
}

func taskPatch(v schema.Values) domain.TaskPatch {
	var p domain.TaskPatch
	if s, ok := v.String("title"); ok {
		p.Title = &s
	}
	if s, ok := v.String("description"); ok {
		p.Description = &s
	}
	if t, ok := v.Time("dueDate"); ok {
		p.DueDate = &t
	}
	if s, ok := v.String("status"); ok {
		status := domain.TaskStatus(s)
		p.Status = &status
	}
	return p
}

// CreateTask stores a new task. Status defaults to NOT_COMPLETED.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taskRequest  true  "Task"
// @Success      201   {object}  SuccessResponse{data=domain.Task}
// @Failure      400   {object}  FailResponse
// @Failure      401   {object}  FailResponse
// @Failure      500   {object}  FailResponse
// @Router       /task [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	v := ctxValues(c).WithDefaults(schema.Task)
	title, _ := v.String("title")
	description, _ := v.String("description")
	dueDate, _ := v.Time("dueDate")
	status, _ := v.String("status")

	task, err := h.service.CreateTask(c.Request().Context(), ports.CreateTaskInput{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      domain.TaskStatus(status),
	})
	if err != nil {
		return Fail(c, http.StatusInternalServerError, "Failed to create task, "+err.Error())
	}
	return success(c, http.StatusCreated, "Task created successfully", task)
}

// UpdateTask changes the given fields of a task. An unknown id answers 200
// with null data.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path      string       true  "Task ID"
// @Param        body    body      taskRequest  true  "Task"
// @Success      200     {object}  SuccessResponse{data=domain.Task}
// @Failure      400     {object}  FailResponse
// @Failure      401     {object}  FailResponse
// @Failure      500     {object}  FailResponse
// @Router       /task/{taskId} [patch]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, ok := taskID(c)
	if !ok {
		return Fail(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	task, err := h.service.UpdateTask(c.Request().Context(), id, taskPatch(ctxValues(c)))
	if err != nil {
		return Fail(c, http.StatusInternalServerError, "Failed to update task, "+err.Error())
	}
	return success(c, http.StatusOK, "Task updated successfully", task)
}

// DeleteTask removes a task and returns it, or null when it did not exist.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path      string  true  "Task ID"
// @Success      200     {object}  SuccessResponse{data=domain.Task}
// @Failure      400     {object}  FailResponse
// @Failure      401     {object}  FailResponse
// @Failure      500     {object}  FailResponse
// @Router       /task/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, ok := taskID(c)
	if !ok {
		return Fail(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	task, err := h.service.DeleteTask(c.Request().Context(), id)
	if err != nil {
		return Fail(c, http.StatusInternalServerError, "Failed to delete task, "+err.Error())
	}
	return success(c, http.StatusOK, "Task deleted successfully", task)
}

// GetTask returns a single task, or null.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path      string  true  "Task ID"
// @Success      200     {object}  SuccessResponse{data=domain.Task}
// @Failure      400     {object}  FailResponse
// @Failure      401     {object}  FailResponse
// @Failure      500     {object}  FailResponse
// @Router       /task/{taskId} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, ok := taskID(c)
	if !ok {
		return Fail(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	task, err := h.service.GetTask(c.Request().Context(), id)
	if err != nil {
		return Fail(c, http.StatusInternalServerError, "Failed to get task, "+err.Error())
	}
	return success(c, http.StatusOK, "Task received successfully", task)
}

// ListTasks returns one page of tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     number  false  "Page number"       default(1)
// @Param        limit      query     number  false  "Page size"         default(10)
// @Param        sortBy     query     string  false  "Sort field"        default(createdAt)
// @Param        sortOrder  query     string  false  "Sort direction"    Enums(ASC, DESC)
// @Param        search     query     string  false  "Substring of title or description"
// @Success      200  {object}  SuccessResponse{data=query.Result[domain.Task]}
// @Failure      400  {object}  FailResponse
// @Failure      401  {object}  FailResponse
// @Failure      500  {object}  FailResponse
// @Router       /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	res, err := h.service.ListTasks(c.Request().Context(), listQuery(ctxValues(c)))
	if err != nil {
		return Fail(c, http.StatusInternalServerError, "Failed to get all tasks, "+err.Error())
	}
	return success(c, http.StatusOK, "All tasks received successfully", res)
}
