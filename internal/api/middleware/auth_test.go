package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

type stubAuth struct {
	currentUserFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuth) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuth) Login(ctx context.Context, username, password string) (*ports.LoginResult, *domain.User, error) {
	return nil, nil, errors.New("not implemented")
}

func (s *stubAuth) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	return s.currentUserFn(ctx, token)
}

func (s *stubAuth) ChangePassword(ctx context.Context, user *domain.User, current, next string) error {
	return errors.New("not implemented")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	auth := &stubAuth{
		currentUserFn: func(ctx context.Context, token string) (*domain.User, error) {
			if token != "token123" {
				t.Fatalf("unexpected token: %s", token)
			}
			return &domain.User{ID: 1, Username: "alice", Role: domain.RoleEditor}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(auth)(func(c echo.Context) error {
		called = true
		user, ok := c.Get(UserContextKey).(*domain.User)
		if !ok || user.Username != "alice" {
			t.Fatalf("identity not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	e := echo.New()
	auth := &stubAuth{
		currentUserFn: func(ctx context.Context, token string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "alice"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer token123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(auth)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	auth := &stubAuth{
		currentUserFn: func(ctx context.Context, token string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(auth)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	e := echo.New()
	auth := &stubAuth{
		currentUserFn: func(ctx context.Context, token string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(auth)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	auth := &stubAuth{
		currentUserFn: func(ctx context.Context, token string) (*domain.User, error) {
			return nil, domain.ErrUnauthenticated
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(auth)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
