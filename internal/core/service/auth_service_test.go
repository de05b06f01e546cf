package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/techmart/commerce-api/internal/core/domain"
	"github.com/techmart/commerce-api/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository. mutations counts every
// write so tests can assert that failed operations leave the store untouched.
type stubUserRepo struct {
	byEmail   map[string]*domain.User
	mutations int
	findErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*domain.User{}}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	r.mutations++
	user.ID = fmt.Sprintf("user-%d", len(r.byEmail)+1)
	r.byEmail[user.Email] = user
	return user, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byEmail[user.Email]; !ok {
		return domain.ErrUserNotFound
	}
	r.mutations++
	r.byEmail[user.Email] = user
	return nil
}

func (r *stubUserRepo) AddRole(_ context.Context, userID, role string) error {
	for _, u := range r.byEmail {
		if u.ID == userID {
			r.mutations++
			if !u.HasRole(role) {
				u.Roles = append(u.Roles, role)
			}
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func newTestAuthService(repo *stubUserRepo) (*AuthService, *TokenService) {
	tokens := NewTokenService("secret", "techmart-identity", "techmart-clients", time.Hour)
	return NewAuthService(repo, tokens, zerolog.Nop()), tokens
}

func TestAuthService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "Alice@Example.COM ",
		Password:  "Str0ngPass",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if result.User.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", result.User.Email)
	}
	if len(result.User.Roles) != 1 || result.User.Roles[0] != domain.RoleCustomer {
		t.Fatalf("expected default customer role, got %v", result.User.Roles)
	}

	stored, ok := repo.byEmail["alice@example.com"]
	if !ok {
		t.Fatalf("user not stored under normalized email")
	}
	if !stored.IsActive {
		t.Fatalf("expected new account to be active")
	}
	if stored.PasswordHash == "Str0ngPass" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Str0ngPass")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	claims, err := tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != stored.ID {
		t.Fatalf("token subject = %q, want %q", claims.UserID, stored.ID)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	in := ports.RegisterInput{Email: "bob@example.com", Password: "Str0ngPass"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	mutationsAfterFirst := repo.mutations

	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	// Case-insensitive: the same address with different casing collides too.
	in.Email = "BOB@example.com"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken for re-cased email, got %v", err)
	}
	if repo.mutations != mutationsAfterFirst {
		t.Fatalf("duplicate register mutated the store")
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no digit", "NoDigitsHere"},
		{"no uppercase", "alllower1"},
		{"no lowercase", "ALLUPPER1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubUserRepo()
			svc, _ := newTestAuthService(repo)

			_, err := svc.Register(context.Background(), ports.RegisterInput{
				Email:    "carol@example.com",
				Password: tc.password,
			})
			if !errors.Is(err, domain.ErrWeakPassword) {
				t.Fatalf("expected ErrWeakPassword, got %v", err)
			}
			if repo.mutations != 0 {
				t.Fatalf("rejected register mutated the store")
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "dave@example.com",
		Password: "Str0ngPass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "DAVE@example.com", "Str0ngPass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token on login")
	}
	if result.User.LastLoginAt == nil {
		t.Fatalf("expected last login timestamp to be set")
	}

	stored := repo.byEmail["dave@example.com"]
	if stored.LastLoginAt == nil {
		t.Fatalf("last login not persisted")
	}

	claims, err := tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Email != "dave@example.com" {
		t.Fatalf("token email = %q", claims.Email)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "eve@example.com",
		Password: "Str0ngPass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.byEmail["frank@example.com"] = &domain.User{
		ID:           "user-frank",
		Email:        "frank@example.com",
		PasswordHash: repo.byEmail["eve@example.com"].PasswordHash,
		IsActive:     false,
	}
	mutations := repo.mutations

	// Unknown email, wrong password and disabled account are indistinguishable.
	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "Str0ngPass"},
		{"wrong password", "eve@example.com", "WrongPass1"},
		{"inactive account", "frank@example.com", "Str0ngPass"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
	if repo.mutations != mutations {
		t.Fatalf("failed logins mutated the store")
	}
}

func TestAuthService_GrantRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "grace@example.com",
		Password: "Str0ngPass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	userID := result.User.ID

	if err := svc.GrantRole(context.Background(), userID, domain.RoleVendor); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	stored := repo.byEmail["grace@example.com"]
	if !stored.HasRole(domain.RoleVendor) || !stored.HasRole(domain.RoleCustomer) {
		t.Fatalf("expected customer and vendor roles, got %v", stored.Roles)
	}

	// Granting again is a no-op, not an error.
	if err := svc.GrantRole(context.Background(), userID, domain.RoleVendor); err != nil {
		t.Fatalf("repeat grant failed: %v", err)
	}
	if len(stored.Roles) != 2 {
		t.Fatalf("repeat grant duplicated the role: %v", stored.Roles)
	}
}

func TestAuthService_GrantRole_Unknown(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	err := svc.GrantRole(context.Background(), "user-1", "superuser")
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if repo.mutations != 0 {
		t.Fatalf("rejected grant mutated the store")
	}
}

func TestAuthService_GrantRole_UserNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	err := svc.GrantRole(context.Background(), "missing", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
