package ports

import (
	"context"

	"github.com/displaydynamix/studio-api/internal/core/domain"
)

// CreateTemplateInput carries a new template's content. The creator is taken
// from the acting identity, never from the payload.
type CreateTemplateInput struct {
	Name        string
	Description string
	Elements    []map[string]any
}

// UpdateTemplateInput is a sparse template update.
type UpdateTemplateInput struct {
	Name        *string
	Description *string
	Elements    *[]map[string]any
}

// TemplateService implements template CRUD with ownership checks: reads and
// mutations of a template succeed for its creator or an admin, everyone
// else gets domain.ErrForbidden.
type TemplateService interface {
	ListOwn(ctx context.Context, actor *domain.User, skip, limit int64) ([]domain.Template, error)
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.Template, error)
	Create(ctx context.Context, actor *domain.User, input CreateTemplateInput) (*domain.Template, error)
	Update(ctx context.Context, actor *domain.User, id int64, input UpdateTemplateInput) (*domain.Template, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}
