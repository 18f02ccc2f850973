package ports

import (
	"context"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
)

// UserRepository defines the persistence operations for user accounts.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotRegistered when no user has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context, plan query.Plan) (query.Result[domain.User], error)
}
