package ports

import "github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"

// TokenIssuer signs bearer tokens carrying a user claim.
type TokenIssuer interface {
	Issue(user domain.User) (string, error)
}

// TokenVerifier checks a bearer token and returns the embedded user.
type TokenVerifier interface {
	Verify(token string) (*domain.User, error)
}
