package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/techmart/commerce-api/internal/core/domain"
	"github.com/techmart/commerce-api/internal/core/ports"
)

// stubTokenService validates exactly one known token.
type stubTokenService struct {
	valid  string
	claims *ports.TokenClaims
}

func (s *stubTokenService) Issue(*domain.User) (string, error) {
	return s.valid, nil
}

func (s *stubTokenService) Validate(token string) (*ports.TokenClaims, error) {
	if token != s.valid {
		return nil, domain.ErrTokenInvalid
	}
	return s.claims, nil
}

func newAuthedRequest(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := &stubTokenService{
		valid: "good-token",
		claims: &ports.TokenClaims{
			UserID: "user-1",
			Email:  "alice@example.com",
			Roles:  []string{domain.RoleCustomer, domain.RoleVendor},
		},
	}

	var nextCalled bool
	handler := Auth(tokens)(func(c echo.Context) error {
		nextCalled = true
		if c.Get(CtxUserID) != "user-1" {
			t.Fatalf("user id not injected: %v", c.Get(CtxUserID))
		}
		if c.Get(CtxEmail) != "alice@example.com" {
			t.Fatalf("email not injected: %v", c.Get(CtxEmail))
		}
		roles, _ := c.Get(CtxRoles).([]string)
		if len(roles) != 2 {
			t.Fatalf("roles not injected: %v", roles)
		}
		return c.NoContent(http.StatusOK)
	})

	c, _ := newAuthedRequest("Bearer good-token")
	if err := handler(c); err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if !nextCalled {
		t.Fatalf("next handler not invoked")
	}
}

func TestAuth_Rejections(t *testing.T) {
	tokens := &stubTokenService{valid: "good-token"}
	handler := Auth(tokens)(func(c echo.Context) error {
		t.Fatalf("next handler must not run on rejected requests")
		return nil
	})

	cases := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic good-token"},
		{"no token", "Bearer"},
		{"invalid token", "Bearer forged-token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newAuthedRequest(tc.authorization)

			err := handler(c)
			var httpErr *echo.HTTPError
			if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 HTTPError, got %v", err)
			}
		})
	}
}

func TestAuth_BearerSchemeCaseInsensitive(t *testing.T) {
	tokens := &stubTokenService{valid: "good-token", claims: &ports.TokenClaims{UserID: "user-1"}}
	handler := Auth(tokens)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	c, _ := newAuthedRequest("bearer good-token")
	if err := handler(c); err != nil {
		t.Fatalf("lowercase scheme rejected: %v", err)
	}
}
