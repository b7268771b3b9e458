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

type authService struct {
	users    ports.UserRepository
	hasher   *security.PasswordHasher
	codec    *security.TokenCodec
	attempts ports.LoginAttemptStore
	audit    ports.AuditPublisher
	// maxAttempts is the configured login-attempt ceiling. Crossing it is
	// logged and counted but never blocks a login; the knob is accepted
	// for operators that watch the logs, not enforced.
	maxAttempts int64
	log         zerolog.Logger
}

// NewAuthService wires the authentication core. attempts and audit may be
// nil; both paths degrade to no-ops.
func NewAuthService(
	users ports.UserRepository,
	hasher *security.PasswordHasher,
	codec *security.TokenCodec,
	attempts ports.LoginAttemptStore,
	audit ports.AuditPublisher,
	maxAttempts int64,
	log zerolog.Logger,
) ports.AuthService {
	return &authService{
		users:       users,
		hasher:      hasher,
		codec:       codec,
		attempts:    attempts,
		audit:       audit,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Authenticate checks username+password against the store. The two failure
// modes are indistinguishable on purpose: a miss burns a dummy bcrypt
// comparison so the timing profile matches the wrong-password path, and both
// return the same generic error. The store is never written to here.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.VerifyDummy(password)
			s.noteFailure(ctx, username)
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.noteFailure(ctx, username)
		return nil, domain.ErrUnauthenticated
	}

	s.noteSuccess(ctx, username)
	return user, nil
}

// Login authenticates and mints a bearer token for the identity.
func (s *authService) Login(ctx context.Context, username, password string) (*ports.LoginResult, *domain.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, nil, err
	}

	token, err := s.codec.Issue(user.Username, s.codec.TTL())
	if err != nil {
		s.log.Error().Err(err).Str("username", user.Username).Msg("token issuance failed")
		return nil, nil, err
	}

	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login succeeded")
	return &ports.LoginResult{
		AccessToken:         token,
		TokenType:           "bearer",
		ForcePasswordChange: user.ForcePasswordChange,
	}, user, nil
}

// CurrentUser resolves a bearer token to the live identity. The token only
// proves who the caller was at issuance; role and status are always re-read
// from the store so later changes take effect immediately. A subject that
// no longer exists (deleted since issuance) is unauthenticated.
func (s *authService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	subject, err := s.codec.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and installs a hash of the
// new one, unconditionally clearing force_password_change. A wrong current
// password leaves the stored hash untouched and returns
// domain.ErrInvalidCredentials: the caller is already authenticated, so
// this is a client error rather than an authentication failure.
func (s *authService) ChangePassword(ctx context.Context, user *domain.User, current, next string) error {
	if !s.hasher.Verify(current, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}

	clear := false
	if _, err := s.users.Update(ctx, user.ID, ports.UserPatch{
		PasswordHash:        &hash,
		ForcePasswordChange: &clear,
	}); err != nil {
		return err
	}

	s.publish(domain.AuditEvent{
		Username:   user.Username,
		Action:     domain.AuditPasswordChanged,
		ActorID:    user.ID,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Str("username", user.Username).Msg("password changed")
	return nil
}

func (s *authService) noteFailure(ctx context.Context, username string) {
	s.publish(domain.AuditEvent{
		Username:   username,
		Action:     domain.AuditLoginFailed,
		OccurredAt: time.Now().UTC(),
	})

	if s.attempts == nil {
		return
	}
	count, err := s.attempts.RecordFailure(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login attempt")
		return
	}
	if s.maxAttempts > 0 && count >= s.maxAttempts {
		// Observed but not enforced: the account stays usable.
		s.log.Warn().Str("username", username).Int64("failures", count).Msg("login failure threshold reached")
	}
}

func (s *authService) noteSuccess(ctx context.Context, username string) {
	s.publish(domain.AuditEvent{
		Username:   username,
		Action:     domain.AuditLoginSucceeded,
		OccurredAt: time.Now().UTC(),
	})

	if s.attempts == nil {
		return
	}
	if err := s.attempts.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login attempts")
	}
}

func (s *authService) publish(event domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Publish(event)
	}
}
