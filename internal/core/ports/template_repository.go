package ports

import (
	"context"

	"github.com/displaydynamix/studio-api/internal/core/domain"
)

// TemplatePatch whitelists the mutable template fields. CreatedBy is fixed
// at creation; ownership never transfers.
type TemplatePatch struct {
	Name        *string
	Description *string
	Elements    *[]map[string]any
}

// TemplateRepository persists canvas templates. Lookups return
// domain.ErrTemplateNotFound when no record matches.
type TemplateRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Template, error)
	ListByCreator(ctx context.Context, creatorID int64, skip, limit int64) ([]domain.Template, error)
	Insert(ctx context.Context, template *domain.Template) (*domain.Template, error)
	Update(ctx context.Context, id int64, patch TemplatePatch) (*domain.Template, error)
	Delete(ctx context.Context, id int64) error
}
