package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/displaydynamix/studio-api/internal/api/middleware"
	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		registerFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.Username != "alice" || input.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{
				ID: 1, Username: input.Username, Email: input.Email,
				Role: domain.RoleViewer, IsActive: true, ForcePasswordChange: true,
			}, nil
		},
	}
	h := NewAuthHandler(&stubAuthService{}, users, 8)

	c, rec := jsonContext(e, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"longenough"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["force_password_change"] != true {
		t.Fatalf("force_password_change not echoed: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password hash leaked: %+v", resp)
	}
}

func TestAuthHandler_Register_PasswordTooShort(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		registerFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(&stubAuthService{}, users, 8)

	c, _ := jsonContext(e, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"short"}`)
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 http error, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		registerFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(&stubAuthService{}, users, 8)

	c, _ := jsonContext(e, http.MethodPost, "/api/auth/register", "not-json")
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 http error, got %v", err)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		registerFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	h := NewAuthHandler(&stubAuthService{}, users, 8)

	c, _ := jsonContext(e, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"longenough"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthHandler_Token_Success(t *testing.T) {
	e := newTestEcho()
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, *domain.User, error) {
			if username != "alice" || password != "secret-pw" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return &ports.LoginResult{AccessToken: "token123", TokenType: "bearer"},
				&domain.User{Username: "alice"}, nil
		},
	}
	h := NewAuthHandler(auth, &stubUserService{}, 8)

	form := url.Values{"username": {"alice"}, "password": {"secret-pw"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Token(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "token123" || resp["token_type"] != "bearer" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, present := resp["force_password_change"]; present {
		t.Fatalf("form endpoint should not carry the flag: %+v", resp)
	}
}

func TestAuthHandler_Token_BadCredentials(t *testing.T) {
	e := newTestEcho()
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, *domain.User, error) {
			return nil, nil, domain.ErrUnauthenticated
		},
	}
	h := NewAuthHandler(auth, &stubUserService{}, 8)

	form := url.Values{"username": {"ghost"}, "password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Token(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthHandler_Login_EchoesForcePasswordChange(t *testing.T) {
	e := newTestEcho()
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, *domain.User, error) {
			return &ports.LoginResult{AccessToken: "token123", TokenType: "bearer", ForcePasswordChange: true},
				&domain.User{Username: "alice", ForcePasswordChange: true}, nil
		},
	}
	h := NewAuthHandler(auth, &stubUserService{}, 8)

	c, rec := jsonContext(e, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"secret-pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "token123" || resp["force_password_change"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, &stubUserService{}, 8)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.UserContextKey, &domain.User{ID: 7, Username: "alice", Role: domain.RoleEditor, IsActive: true})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["role"] != "Editor" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Me_NoIdentity(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, &stubUserService{}, 8)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthHandler_ChangePassword_Success(t *testing.T) {
	e := newTestEcho()
	auth := &stubAuthService{
		changePasswordFn: func(ctx context.Context, user *domain.User, current, next string) error {
			if user.Username != "alice" || current != "old-password" || next != "new-password" {
				t.Fatalf("unexpected args: %s %s %s", user.Username, current, next)
			}
			return nil
		},
	}
	h := NewAuthHandler(auth, &stubUserService{}, 8)

	c, rec := jsonContext(e, http.MethodPost, "/api/auth/change-password",
		`{"current_password":"old-password","new_password":"new-password"}`)
	c.Set(middleware.UserContextKey, &domain.User{ID: 1, Username: "alice"})

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Password changed successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_ChangePassword_WrongCurrent(t *testing.T) {
	e := newTestEcho()
	auth := &stubAuthService{
		changePasswordFn: func(ctx context.Context, user *domain.User, current, next string) error {
			return domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(auth, &stubUserService{}, 8)

	c, _ := jsonContext(e, http.MethodPost, "/api/auth/change-password",
		`{"current_password":"wrong","new_password":"new-password"}`)
	c.Set(middleware.UserContextKey, &domain.User{ID: 1, Username: "alice"})

	if err := h.ChangePassword(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_ChangePassword_ShortNewPassword(t *testing.T) {
	e := newTestEcho()
	auth := &stubAuthService{
		changePasswordFn: func(ctx context.Context, user *domain.User, current, next string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	h := NewAuthHandler(auth, &stubUserService{}, 8)

	c, _ := jsonContext(e, http.MethodPost, "/api/auth/change-password",
		`{"current_password":"old-password","new_password":"tiny"}`)
	c.Set(middleware.UserContextKey, &domain.User{ID: 1, Username: "alice"})

	err := h.ChangePassword(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 http error, got %v", err)
	}
}
