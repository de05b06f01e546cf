package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/techmart/commerce-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error envelope: %s", rec.Body.String())
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, "email already registered"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"token expired", domain.ErrTokenExpired, http.StatusUnauthorized, "invalid or expired token"},
		{"token invalid", domain.ErrTokenInvalid, http.StatusUnauthorized, "invalid or expired token"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"product not found", domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{"category not found", domain.ErrCategoryNotFound, http.StatusNotFound, "category not found"},
		{"duplicate sku", domain.ErrDuplicateSKU, http.StatusBadRequest, "sku already exists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := renderError(t, tc.err)
			if code != tc.wantCode || msg != tc.wantMsg {
				t.Fatalf("got (%d, %q), want (%d, %q)", code, msg, tc.wantCode, tc.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	// Services wrap domain errors with context; mapping must still apply.
	wrapped := fmt.Errorf("get product: %w", domain.ErrProductNotFound)
	code, msg := renderError(t, wrapped)
	if code != http.StatusNotFound || msg != "product not found" {
		t.Fatalf("got (%d, %q), want (404, product not found)", code, msg)
	}
}

func TestHTTPErrorHandler_WeakPasswordKeepsDetail(t *testing.T) {
	err := fmt.Errorf("%w: must contain a digit", domain.ErrWeakPassword)
	code, msg := renderError(t, err)
	if code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", code)
	}
	if msg != err.Error() {
		t.Fatalf("policy detail lost: %q", msg)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusTooManyRequests, "too many requests"))
	if code != http.StatusTooManyRequests || msg != "too many requests" {
		t.Fatalf("got (%d, %q)", code, msg)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	code, msg := renderError(t, errors.New("pq: connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked to client: %q", msg)
	}
}
