package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// --- Request / Response types (documentation only; bodies are validated by schema) ---

type registerRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"s3cret-pass" minLength:"8" maxLength:"20"`
}

type loginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"s3cret-pass" minLength:"8" maxLength:"20"`
}

type registerResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register creates a new account.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  SuccessResponse{data=registerResponse}
// @Failure      400   {object}  FailResponse
// @Router       /user/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	v := ctxValues(c)
	username, _ := v.String("username")
	email, _ := v.String("email")
	password, _ := v.String("password")

	user, err := h.service.Register(c.Request().Context(), username, email, password)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Could not register user, "+err.Error())
	}

	return success(c, http.StatusCreated, "User registered successfully",
		registerResponse{Username: user.Username, Email: user.Email})
}

// Login authenticates a user and returns a bearer token valid for one hour.
//
// @Summary      Log in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  SuccessResponse{data=ports.AuthResult}
// @Failure      400   {object}  FailResponse
// @Router       /user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	v := ctxValues(c)
	email, _ := v.String("email")
	password, _ := v.String("password")

	res, err := h.service.Authenticate(c.Request().Context(), email, password)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "The user's login attempt was unsuccessful, "+err.Error())
	}

	return success(c, http.StatusOK, "The user has been logged in successfully", res)
}

// ListUsers returns one page of users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     number  false  "Page number"       default(1)
// @Param        limit      query     number  false  "Page size"         default(10)
// @Param        sortBy     query     string  false  "Sort field"        default(createdAt)
// @Param        sortOrder  query     string  false  "Sort direction"    Enums(ASC, DESC)
// @Param        search     query     string  false  "Substring of username or email"
// @Success      200  {object}  SuccessResponse{data=query.Result[domain.User]}
// @Failure      400  {object}  FailResponse
// @Failure      401  {object}  FailResponse
// @Failure      500  {object}  FailResponse
// @Router       /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	res, err := h.service.ListUsers(c.Request().Context(), listQuery(ctxValues(c)))
	if err != nil {
		return Fail(c, http.StatusInternalServerError, "Failed to get all users, "+err.Error())
	}
	return success(c, http.StatusOK, "All users received successfully", res)
}
