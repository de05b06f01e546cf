package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func rateLimitedHandler(rl *RateLimiter) echo.HandlerFunc {
	return rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
}

func requestFromIP(ip string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rateLimitedHandler(rl)

	for i := 0; i < 2; i++ {
		c, rec := requestFromIP("10.0.0.1")
		if err := handler(c); err != nil {
			t.Fatalf("request %d rejected: %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}

	c, rec := requestFromIP("10.0.0.1")
	err := handler(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 HTTPError, got %v", err)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("missing Retry-After hint")
	}
}

func TestRateLimiter_PerIPIsolation(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := rateLimitedHandler(rl)

	c, _ := requestFromIP("10.0.0.1")
	if err := handler(c); err != nil {
		t.Fatalf("first client rejected: %v", err)
	}

	// Exhausting one client's bucket does not affect another's.
	c, _ = requestFromIP("10.0.0.1")
	if err := handler(c); err == nil {
		t.Fatalf("expected first client to be throttled")
	}
	c, _ = requestFromIP("10.0.0.2")
	if err := handler(c); err != nil {
		t.Fatalf("second client throttled by first client's bucket: %v", err)
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	handler := rateLimitedHandler(rl)

	// Zero config falls back to 10/min with burst 10.
	for i := 0; i < 10; i++ {
		c, _ := requestFromIP("10.0.0.1")
		if err := handler(c); err != nil {
			t.Fatalf("request %d rejected under default config: %v", i+1, err)
		}
	}
	c, _ := requestFromIP("10.0.0.1")
	if err := handler(c); err == nil {
		t.Fatalf("expected throttling after default burst")
	}
}
