package ports

import (
	"context"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
)

// AuthResult is returned by a successful login.
type AuthResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	ListUsers(ctx context.Context, q query.ListQuery) (query.Result[domain.User], error)
}
