package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

type templateService struct {
	templates ports.TemplateRepository
	log       zerolog.Logger
}

// NewTemplateService wires template CRUD with ownership enforcement.
func NewTemplateService(templates ports.TemplateRepository, log zerolog.Logger) ports.TemplateService {
	return &templateService{templates: templates, log: log}
}

func (s *templateService) ListOwn(ctx context.Context, actor *domain.User, skip, limit int64) ([]domain.Template, error) {
	return s.templates.ListByCreator(ctx, actor.ID, skip, limit)
}

// Get returns a template if the actor created it or is an admin. The 404 is
// returned before the ownership check, matching the rest of the API: a
// missing id is not an authorization question.
func (s *templateService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Template, error) {
	template, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(template.CreatedBy) {
		return nil, domain.ErrForbidden
	}
	return template, nil
}

func (s *templateService) Create(ctx context.Context, actor *domain.User, input ports.CreateTemplateInput) (*domain.Template, error) {
	created, err := s.templates.Insert(ctx, &domain.Template{
		Name:        input.Name,
		Description: input.Description,
		Elements:    input.Elements,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("template_id", created.ID).Int64("created_by", actor.ID).Msg("template created")
	return created, nil
}

func (s *templateService) Update(ctx context.Context, actor *domain.User, id int64, input ports.UpdateTemplateInput) (*domain.Template, error) {
	existing, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(existing.CreatedBy) {
		return nil, domain.ErrForbidden
	}

	return s.templates.Update(ctx, id, ports.TemplatePatch{
		Name:        input.Name,
		Description: input.Description,
		Elements:    input.Elements,
	})
}

func (s *templateService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	existing, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(existing.CreatedBy) {
		return domain.ErrForbidden
	}

	if err := s.templates.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("template_id", id).Int64("actor_id", actor.ID).Msg("template deleted")
	return nil
}
