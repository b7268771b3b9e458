package handler

import (
	"time"

	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

type createTemplateRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Elements    []map[string]any `json:"elements"`
}

type updateTemplateRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Elements    *[]map[string]any `json:"elements"`
}

func (r updateTemplateRequest) toInput() ports.UpdateTemplateInput {
	return ports.UpdateTemplateInput{
		Name:        r.Name,
		Description: r.Description,
		Elements:    r.Elements,
	}
}

// creatorResponse is the summary of the account that owns a template,
// embedded in template reads so the editor can show attribution without a
// second request.
type creatorResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func toCreatorResponse(u *domain.User) *creatorResponse {
	if u == nil {
		return nil
	}
	return &creatorResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

type templateResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Elements    []map[string]any `json:"elements"`
	CreatedBy   int64            `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
	User        *creatorResponse `json:"user,omitempty"`
}

func toTemplateResponse(t *domain.Template) templateResponse {
	elements := t.Elements
	if elements == nil {
		elements = []map[string]any{}
	}
	return templateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Elements:    elements,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTemplateResponseWithCreator(t *domain.Template, creator *domain.User) templateResponse {
	resp := toTemplateResponse(t)
	resp.User = toCreatorResponse(creator)
	return resp
}

func toTemplateResponses(templates []domain.Template, creator *domain.User) []templateResponse {
	out := make([]templateResponse, 0, len(templates))
	for i := range templates {
		out = append(out, toTemplateResponseWithCreator(&templates[i], creator))
	}
	return out
}
