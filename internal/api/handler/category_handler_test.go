package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/techmart/commerce-api/internal/core/domain"
	"github.com/techmart/commerce-api/internal/core/ports"
)

// stubCategoryService implements ports.CategoryService with overridable behaviour.
type stubCategoryService struct {
	listFn   func(ctx context.Context) ([]*domain.Category, error)
	createFn func(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error)
}

func (s *stubCategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.listFn(ctx)
}

func (s *stubCategoryService) CreateCategory(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	return s.createFn(ctx, in)
}

func TestCategoryHandler_List(t *testing.T) {
	h := NewCategoryHandler(&stubCategoryService{
		listFn: func(context.Context) ([]*domain.Category, error) {
			return []*domain.Category{
				{ID: "cat-1", Name: "Books"},
				{ID: "cat-2", Name: "Electronics"},
			}, nil
		},
	})

	c, rec := newProductTestContext(t, http.MethodGet, "/categories", "")

	if err := h.List(c); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp []categoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp) != 2 || resp[0].Name != "Books" {
		t.Fatalf("unexpected categories: %+v", resp)
	}
}

func TestCategoryHandler_Create(t *testing.T) {
	var captured ports.CreateCategoryInput
	h := NewCategoryHandler(&stubCategoryService{
		createFn: func(_ context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
			captured = in
			return &domain.Category{ID: "cat-7", Name: in.Name, ParentID: in.ParentID}, nil
		},
	})

	c, rec := newProductTestContext(t, http.MethodPost, "/categories", `{"name":"Laptops","parent_id":"cat-1"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/categories/cat-7" {
		t.Fatalf("location = %q, want /categories/cat-7", loc)
	}
	if captured.Name != "Laptops" || captured.ParentID != "cat-1" {
		t.Fatalf("unexpected input forwarded: %+v", captured)
	}
}

func TestCategoryHandler_Create_Invalid(t *testing.T) {
	h := NewCategoryHandler(&stubCategoryService{
		createFn: func(context.Context, ports.CreateCategoryInput) (*domain.Category, error) {
			t.Fatalf("service must not be called on invalid payloads")
			return nil, nil
		},
	})

	c, _ := newProductTestContext(t, http.MethodPost, "/categories", `{"parent_id":"cat-1"}`)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestCategoryHandler_Create_UnknownParent(t *testing.T) {
	h := NewCategoryHandler(&stubCategoryService{
		createFn: func(context.Context, ports.CreateCategoryInput) (*domain.Category, error) {
			return nil, domain.ErrCategoryNotFound
		},
	})

	c, _ := newProductTestContext(t, http.MethodPost, "/categories", `{"name":"Laptops","parent_id":"missing"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound to bubble up, got %v", err)
	}
}
