package handler

import (
	"context"

	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn   func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn          func(ctx context.Context, username, password string) (*ports.LoginResult, *domain.User, error)
	currentUserFn    func(ctx context.Context, token string) (*domain.User, error)
	changePasswordFn func(ctx context.Context, user *domain.User, current, next string) error
}

func (s *stubAuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	return s.currentUserFn(ctx, token)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, user *domain.User, current, next string) error {
	return s.changePasswordFn(ctx, user, current, next)
}

type stubUserService struct {
	registerFn   func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	createFn     func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	getFn        func(ctx context.Context, id int64) (*domain.User, error)
	listFn       func(ctx context.Context, filter ports.UserFilter) ([]domain.User, error)
	updateFn     func(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn     func(ctx context.Context, id int64) error
	activateFn   func(ctx context.Context, id int64) (*domain.User, error)
	deactivateFn func(ctx context.Context, id int64) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context, filter ports.UserFilter) ([]domain.User, error) {
	return s.listFn(ctx, filter)
}

func (s *stubUserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubUserService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) Activate(ctx context.Context, id int64) (*domain.User, error) {
	return s.activateFn(ctx, id)
}

func (s *stubUserService) Deactivate(ctx context.Context, id int64) (*domain.User, error) {
	return s.deactivateFn(ctx, id)
}

type stubTemplateService struct {
	listOwnFn func(ctx context.Context, actor *domain.User, skip, limit int64) ([]domain.Template, error)
	getFn     func(ctx context.Context, actor *domain.User, id int64) (*domain.Template, error)
	createFn  func(ctx context.Context, actor *domain.User, input ports.CreateTemplateInput) (*domain.Template, error)
	updateFn  func(ctx context.Context, actor *domain.User, id int64, input ports.UpdateTemplateInput) (*domain.Template, error)
	deleteFn  func(ctx context.Context, actor *domain.User, id int64) error
}

func (s *stubTemplateService) ListOwn(ctx context.Context, actor *domain.User, skip, limit int64) ([]domain.Template, error) {
	return s.listOwnFn(ctx, actor, skip, limit)
}

func (s *stubTemplateService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Template, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubTemplateService) Create(ctx context.Context, actor *domain.User, input ports.CreateTemplateInput) (*domain.Template, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubTemplateService) Update(ctx context.Context, actor *domain.User, id int64, input ports.UpdateTemplateInput) (*domain.Template, error) {
	return s.updateFn(ctx, actor, id, input)
}

func (s *stubTemplateService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	return s.deleteFn(ctx, actor, id)
}
