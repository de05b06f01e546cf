package ports

import "github.com/techmart/commerce-api/internal/core/domain"

// TokenClaims is the decoded, verified content of a session token.
type TokenClaims struct {
	UserID string
	Email  string
	Roles  []string
}

// TokenService creates and validates stateless signed session tokens.
type TokenService interface {
	// Issue encodes the user identity into a signed token bound to the
	// configured issuer and audience.
	Issue(user *domain.User) (string, error)
	// Validate verifies signature, issuer, audience and expiry. It returns
	// domain.ErrTokenExpired for lapsed tokens and domain.ErrTokenInvalid
	// for every other defect.
	Validate(token string) (*TokenClaims, error)
}
