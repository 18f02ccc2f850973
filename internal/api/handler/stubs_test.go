package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shivam-singh-au17/assessment-sassy/internal/api/middleware"
	"github.com/shivam-singh-au17/assessment-sassy/internal/api/schema"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/ports"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
)

type stubUserService struct {
	registerFn func(ctx context.Context, username, email, password string) (*domain.User, error)
	authFn     func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	listFn     func(ctx context.Context, q query.ListQuery) (query.Result[domain.User], error)
}

func (s *stubUserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubUserService) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.authFn(ctx, email, password)
}

func (s *stubUserService) ListUsers(ctx context.Context, q query.ListQuery) (query.Result[domain.User], error) {
	return s.listFn(ctx, q)
}

type stubTaskService struct {
	createFn func(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error)
	updateFn func(ctx context.Context, id string, p domain.TaskPatch) (*domain.Task, error)
	deleteFn func(ctx context.Context, id string) (*domain.Task, error)
	getFn    func(ctx context.Context, id string) (*domain.Task, error)
	listFn   func(ctx context.Context, q query.ListQuery) (query.Result[domain.Task], error)
	calls    int
}

func (s *stubTaskService) CreateTask(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	s.calls++
	return s.createFn(ctx, in)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, id string, p domain.TaskPatch) (*domain.Task, error) {
	s.calls++
	return s.updateFn(ctx, id, p)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	s.calls++
	return s.deleteFn(ctx, id)
}

func (s *stubTaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	s.calls++
	return s.getFn(ctx, id)
}

func (s *stubTaskService) ListTasks(ctx context.Context, q query.ListQuery) (query.Result[domain.Task], error) {
	s.calls++
	return s.listFn(ctx, q)
}

// newContext builds an echo context carrying already validated values, as
// the schema middleware would leave them.
func newContext(method, target string, values schema.Values) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if values != nil {
		c.Set(middleware.ValuesKey, values)
	}
	return c, rec
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return env
}
