package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/ports"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
	"github.com/shivam-singh-au17/assessment-sassy/internal/metrics"
)

var (
	userSearchFields = []string{"username", "email"}
	userProjection   = []string{"_id", "username", "email", "createdAt", "updatedAt"}
)

// UserService implements registration, login and user listing.
type UserService struct {
	repo   ports.UserRepository
	tokens ports.TokenIssuer
	users  *lister[domain.User]
	log    zerolog.Logger
}

// NewUserService wires a UserService. cache may be nil to disable list caching.
func NewUserService(repo ports.UserRepository, tokens ports.TokenIssuer, cache ports.ListCache, log zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		users: &lister[domain.User]{
			scope:        scopeUsers,
			searchFields: userSearchFields,
			projection:   userProjection,
			fetch:        repo.List,
			cache:        cache,
			log:          log,
		},
		log: log,
	}
}

// Register creates an account unless the email is already taken. The
// returned user never carries the password hash.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		metrics.UsersRegisteredTotal.WithLabelValues("exists").Inc()
		return nil, domain.ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrUserNotRegistered):
		metrics.UsersRegisteredTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		metrics.UsersRegisteredTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.UsersRegisteredTotal.WithLabelValues("exists").Inc()
		} else {
			metrics.UsersRegisteredTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.UsersRegisteredTotal.WithLabelValues("ok").Inc()
	s.users.invalidate(ctx)
	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")

	public := created.Public()
	return &public, nil
}

// Authenticate checks the credentials and issues a bearer token.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotRegistered) {
			metrics.LoginsTotal.WithLabelValues("not_registered").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
		return nil, domain.ErrWrongPassword
	}

	token, err := s.tokens.Issue(*user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.log.Debug().Str("user_id", user.ID).Msg("user logged in")

	return &ports.AuthResult{User: user.Public(), Token: token}, nil
}

// ListUsers returns one page of users and the size of the filtered set.
func (s *UserService) ListUsers(ctx context.Context, q query.ListQuery) (query.Result[domain.User], error) {
	return s.users.list(ctx, q)
}
