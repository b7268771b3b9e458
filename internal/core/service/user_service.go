package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
	"github.com/displaydynamix/studio-api/internal/core/security"
)

type userService struct {
	users  ports.UserRepository
	hasher *security.PasswordHasher
	audit  ports.AuditPublisher
	log    zerolog.Logger
}

// NewUserService wires account CRUD and lifecycle transitions. audit may be
// nil.
func NewUserService(
	users ports.UserRepository,
	hasher *security.PasswordHasher,
	audit ports.AuditPublisher,
	log zerolog.Logger,
) ports.UserService {
	return &userService{users: users, hasher: hasher, audit: audit, log: log}
}

// Register is the self-service path: whatever the caller sent,
// force_password_change starts out true.
func (s *userService) Register(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	input.ForcePasswordChange = true
	return s.create(ctx, input)
}

// Create is the administrative path: the supplied ForcePasswordChange value
// is honored as-is.
func (s *userService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.create(ctx, input)
}

func (s *userService) create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	// Pre-checks give precise conflict errors; the unique indexes remain
	// the authority under concurrent creation.
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	permissions := input.Permissions
	if permissions == nil {
		permissions = map[string]any{}
	}

	user := &domain.User{
		Username:            input.Username,
		Email:               input.Email,
		PasswordHash:        hash,
		Role:                role,
		Permissions:         permissions,
		IsActive:            true,
		ForcePasswordChange: input.ForcePasswordChange,
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.publish(created.Username, domain.AuditUserCreated, created.ID)
	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) List(ctx context.Context, filter ports.UserFilter) ([]domain.User, error) {
	if filter.Role != nil && !filter.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	return s.users.List(ctx, filter)
}

// Update applies a sparse administrative update through the repository's
// field whitelist. A new password is rehashed here; the raw value never
// reaches storage.
func (s *userService) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	patch := ports.UserPatch{
		Username:            input.Username,
		Email:               input.Email,
		Role:                input.Role,
		Permissions:         input.Permissions,
		IsActive:            input.IsActive,
		ForcePasswordChange: input.ForcePasswordChange,
	}

	if input.Role != nil && !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	return s.users.Update(ctx, id, patch)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(user.Username, domain.AuditUserDeleted, user.ID)
	s.log.Info().Str("username", user.Username).Msg("user deleted")
	return nil
}

func (s *userService) Activate(ctx context.Context, id int64) (*domain.User, error) {
	return s.setActive(ctx, id, true, domain.AuditUserActivated)
}

func (s *userService) Deactivate(ctx context.Context, id int64) (*domain.User, error) {
	return s.setActive(ctx, id, false, domain.AuditUserDeactivated)
}

func (s *userService) setActive(ctx context.Context, id int64, active bool, action domain.AuditAction) (*domain.User, error) {
	user, err := s.users.Update(ctx, id, ports.UserPatch{IsActive: &active})
	if err != nil {
		return nil, err
	}
	s.publish(user.Username, action, user.ID)
	return user, nil
}

func (s *userService) publish(username string, action domain.AuditAction, actorID int64) {
	if s.audit != nil {
		s.audit.Publish(domain.AuditEvent{
			Username:   username,
			Action:     action,
			ActorID:    actorID,
			OccurredAt: time.Now().UTC(),
		})
	}
}
