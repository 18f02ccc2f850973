package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
)

func newUserSvc(repo *stubUserRepo, issuer *stubIssuer) *UserService {
	return NewUserService(repo, issuer, nil, zerolog.Nop())
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo, &stubIssuer{})

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatalf("returned user must not carry the password hash")
	}
	if user.ID == "" || user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatalf("expected id and timestamps, got %+v", user)
	}

	stored := repo.users[0]
	if stored.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo, &stubIssuer{})

	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass1234"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bobby", "bob@example.com", "other123"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if n := repo.countByEmail("bob@example.com"); n != 1 {
		t.Fatalf("expected exactly one user with the email, got %d", n)
	}
}

func TestUserService_Register_EmailComparisonIsCaseSensitive(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo, &stubIssuer{})

	_, _ = svc.Register(context.Background(), "bob", "bob@example.com", "pass1234")
	if _, err := svc.Register(context.Background(), "bob2", "Bob@example.com", "pass1234"); err != nil {
		t.Fatalf("differently cased email should register, got %v", err)
	}
}

func TestUserService_Register_LookupFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("mongo unavailable")
	svc := newUserSvc(repo, &stubIssuer{})

	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass1234"); err == nil || errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected lookup error to propagate, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user must be created when the lookup fails")
	}
}

func TestUserService_Authenticate_Success(t *testing.T) {
	repo := newStubUserRepo()
	issuer := &stubIssuer{token: "token123"}
	svc := newUserSvc(repo, issuer)

	if _, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cret12"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Authenticate(context.Background(), "carol@example.com", "s3cret12")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if res.Token != "token123" {
		t.Fatalf("expected issued token, got %q", res.Token)
	}
	if res.User.Username != "carol" || res.User.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if issuer.got.Email != "carol@example.com" {
		t.Fatalf("token must be issued for the authenticated user, got %+v", issuer.got)
	}
}

func TestUserService_Authenticate_DistinctFailures(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo, &stubIssuer{token: "t"})
	_, _ = svc.Register(context.Background(), "dave", "dave@example.com", "goodpass")

	_, wrongPass := svc.Authenticate(context.Background(), "dave@example.com", "badpass1")
	if !errors.Is(wrongPass, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", wrongPass)
	}

	_, unknown := svc.Authenticate(context.Background(), "ghost@example.com", "goodpass")
	if !errors.Is(unknown, domain.ErrUserNotRegistered) {
		t.Fatalf("expected ErrUserNotRegistered, got %v", unknown)
	}

	if wrongPass.Error() == unknown.Error() {
		t.Fatalf("failures must carry different messages")
	}
}

func TestUserService_Authenticate_IssueFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo, &stubIssuer{err: domain.ErrMissingSigningSecret})
	_, _ = svc.Register(context.Background(), "erin", "erin@example.com", "goodpass")

	if _, err := svc.Authenticate(context.Background(), "erin@example.com", "goodpass"); !errors.Is(err, domain.ErrMissingSigningSecret) {
		t.Fatalf("expected ErrMissingSigningSecret, got %v", err)
	}
}

func TestUserService_ListUsers_SearchesUsernameAndEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo, &stubIssuer{})
	ctx := context.Background()

	_, _ = svc.Register(ctx, "FooFighter", "dave@example.com", "pass1234")
	_, _ = svc.Register(ctx, "nirvana", "kurt@foo.io", "pass1234")
	_, _ = svc.Register(ctx, "pearl", "eddie@example.com", "pass1234")

	search := "foo"
	res, err := svc.ListUsers(ctx, query.Normalize(query.RawListQuery{Search: &search}))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Count != 2 || len(res.Data) != 2 {
		t.Fatalf("expected 2 matches, got count=%d len=%d", res.Count, len(res.Data))
	}
	for _, u := range res.Data {
		if u.PasswordHash != "" {
			t.Fatalf("listed users must not carry password hashes")
		}
	}
}

func TestUserService_Register_InvalidatesUserListCache(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubListCache()
	svc := NewUserService(repo, &stubIssuer{}, cache, zerolog.Nop())
	ctx := context.Background()
	q := query.Normalize(query.RawListQuery{})

	if _, err := svc.ListUsers(ctx, q); err != nil {
		t.Fatalf("list: %v", err)
	}
	_, _ = svc.Register(ctx, "frank", "frank@example.com", "pass1234")

	res, err := svc.ListUsers(ctx, q)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Count != 1 {
		t.Fatalf("expected fresh count after registration, got %d", res.Count)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != scopeUsers {
		t.Fatalf("expected users scope invalidated, got %v", cache.invalidated)
	}
}
