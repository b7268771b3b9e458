package service

import (
	"context"
	"sync"
	"time"

	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

// stubUserRepo is an in-memory UserRepository with the same contract as the
// Mongo implementation: not-found sentinels, uniqueness checks, whitelist
// patching, updated_at bumps.
type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, patch ports.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Permissions != nil {
		u.Permissions = *patch.Permissions
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.ForcePasswordChange != nil {
		u.ForcePasswordChange = *patch.ForcePasswordChange
	}
	now := time.Now().UTC()
	u.UpdatedAt = &now
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.UserFilter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.ActiveOnly && !u.IsActive {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubTemplateRepo is an in-memory TemplateRepository.
type stubTemplateRepo struct {
	nextID    int64
	templates map[int64]*domain.Template
}

func newStubTemplateRepo() *stubTemplateRepo {
	return &stubTemplateRepo{templates: make(map[int64]*domain.Template)}
}

func cloneTemplate(t *domain.Template) *domain.Template {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTemplateRepo) FindByID(_ context.Context, id int64) (*domain.Template, error) {
	if t, ok := r.templates[id]; ok {
		return cloneTemplate(t), nil
	}
	return nil, domain.ErrTemplateNotFound
}

func (r *stubTemplateRepo) ListByCreator(_ context.Context, creatorID int64, _, _ int64) ([]domain.Template, error) {
	var out []domain.Template
	for _, t := range r.templates {
		if t.CreatedBy == creatorID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTemplateRepo) Insert(_ context.Context, template *domain.Template) (*domain.Template, error) {
	r.nextID++
	stored := cloneTemplate(template)
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	r.templates[stored.ID] = stored
	return cloneTemplate(stored), nil
}

func (r *stubTemplateRepo) Update(_ context.Context, id int64, patch ports.TemplatePatch) (*domain.Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Elements != nil {
		t.Elements = *patch.Elements
	}
	now := time.Now().UTC()
	t.UpdatedAt = &now
	return cloneTemplate(t), nil
}

func (r *stubTemplateRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.templates[id]; !ok {
		return domain.ErrTemplateNotFound
	}
	delete(r.templates, id)
	return nil
}

// stubAttempts records RecordFailure/Reset calls.
type stubAttempts struct {
	failures map[string]int64
	resets   []string
}

func newStubAttempts() *stubAttempts {
	return &stubAttempts{failures: make(map[string]int64)}
}

func (s *stubAttempts) RecordFailure(_ context.Context, username string) (int64, error) {
	s.failures[username]++
	return s.failures[username], nil
}

func (s *stubAttempts) Reset(_ context.Context, username string) error {
	s.resets = append(s.resets, username)
	delete(s.failures, username)
	return nil
}

// stubPublisher collects published audit events synchronously.
type stubPublisher struct {
	events []domain.AuditEvent
}

func (p *stubPublisher) Publish(event domain.AuditEvent) {
	p.events = append(p.events, event)
}

func (p *stubPublisher) actions() []domain.AuditAction {
	out := make([]domain.AuditAction, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

// stubAuditRepo collects inserted audit events.
type stubAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *stubAuditRepo) Insert(_ context.Context, event domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}
