package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/shivam-singh-au17/assessment-sassy/docs"
	"github.com/shivam-singh-au17/assessment-sassy/internal/api/handler"
	"github.com/shivam-singh-au17/assessment-sassy/internal/api/middleware"
	"github.com/shivam-singh-au17/assessment-sassy/internal/api/schema"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/ports"
	"github.com/shivam-singh-au17/assessment-sassy/internal/metrics"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Users     ports.UserService
	Tasks     ports.TaskService
	Tokens    ports.TokenVerifier
	Readiness []handler.Dependency
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	reg := metrics.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Operational routes ---
	health := handler.NewHealthHandler()
	ready := handler.NewReadinessHandler(d.Readiness...)

	e.GET("/", handler.Welcome)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", ready.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	users := handler.NewUserHandler(d.Users)
	tasks := handler.NewTaskHandler(d.Tasks)
	auth := middleware.Auth(d.Tokens)

	api := e.Group("/api")

	api.POST("/user/register", users.Register, middleware.ValidateBody(schema.RegisterUser))
	api.POST("/user/login", users.Login, middleware.ValidateBody(schema.LoginUser))
	api.GET("/users", users.ListUsers, auth, middleware.ValidateQuery(schema.GetAllUsers))

	api.POST("/task", tasks.CreateTask, auth, middleware.ValidateBody(schema.Task))
	api.PATCH("/task/:taskId", tasks.UpdateTask, auth, middleware.ValidateBody(schema.Task))
	api.DELETE("/task/:taskId", tasks.DeleteTask, auth)
	api.GET("/task/:taskId", tasks.GetTask, auth)
	api.GET("/tasks", tasks.ListTasks, auth, middleware.ValidateQuery(schema.GetAllTasks))

	return e
}
