package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/techmart/commerce-api/internal/api/metrics"
	"github.com/techmart/commerce-api/internal/core/domain"
	"github.com/techmart/commerce-api/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration, login and role grants against the
// credential store and the token issuer. The service itself is stateless.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Register creates an account with the default customer role and returns a
// freshly issued token. Duplicate emails and policy violations cause zero
// store mutations.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup: %w", err)
	}
	if existing != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "rejected").Inc()
		return nil, domain.ErrEmailTaken
	}

	if violations := passwordViolations(in.Password); len(violations) > 0 {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "rejected").Inc()
		return nil, fmt.Errorf("%w: %s", domain.ErrWeakPassword, strings.Join(violations, "; "))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
		Roles:        []string{domain.RoleCustomer},
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info().Str("email", email).Str("user_id", created.ID).Msg("user registered")
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()

	return &ports.AuthResult{Token: token, User: publicView(created)}, nil
}

// Login authenticates by email and password. Unknown emails, disabled
// accounts and wrong passwords all fail with the same error so accounts
// cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup: %w", err)
	}
	if !user.IsActive {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("login: update last login: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("email", email).Str("user_id", user.ID).Msg("user logged in")
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()

	return &ports.AuthResult{Token: token, User: publicView(user)}, nil
}

// GrantRole adds a role to an existing user. The grant is idempotent.
func (s *AuthService) GrantRole(ctx context.Context, userID, role string) error {
	if !domain.KnownRole(role) {
		return domain.ErrUnknownRole
	}
	if err := s.repo.AddRole(ctx, userID, role); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Str("role", role).Msg("role granted")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// passwordViolations checks the registration password policy: at least
// minPasswordLength characters, one digit, one lowercase and one uppercase.
func passwordViolations(password string) []string {
	var violations []string
	if len(password) < minPasswordLength {
		violations = append(violations, fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if !hasDigit {
		violations = append(violations, "must contain a digit")
	}
	if !hasLower {
		violations = append(violations, "must contain a lowercase letter")
	}
	if !hasUpper {
		violations = append(violations, "must contain an uppercase letter")
	}
	return violations
}

func publicView(u *domain.User) ports.UserView {
	return ports.UserView{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Roles:       append([]string(nil), u.Roles...),
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
