package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

// TemplateHandler exposes template CRUD. Ownership enforcement lives in the
// service layer, not here: the handler only moves data and the acting
// identity across the wire. Reads embed a summary of the creating account so
// the editor can show attribution without a second request.
type TemplateHandler struct {
	templates ports.TemplateService
	users     ports.UserService
}

func NewTemplateHandler(templates ports.TemplateService, users ports.UserService) *TemplateHandler {
	return &TemplateHandler{templates: templates, users: users}
}

// resolveCreator looks up a template's owner for the embedded summary. The
// actor is returned directly when it is the owner; a deleted owner yields nil
// and the summary is simply omitted.
func (h *TemplateHandler) resolveCreator(ctx context.Context, actor *domain.User, createdBy int64) *domain.User {
	if actor != nil && actor.ID == createdBy {
		return actor
	}
	creator, err := h.users.Get(ctx, createdBy)
	if err != nil {
		return nil
	}
	return creator
}

// List returns the caller's own templates.
//
// @Summary      List the current user's templates
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query  int  false  "Offset"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {array}   templateResponse
// @Failure      401  {object}  errorResponse
// @Router       /templates [get]
func (h *TemplateHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	skip, limit := listBounds(c)
	templates, err := h.templates.ListOwn(c.Request().Context(), actor, skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTemplateResponses(templates, actor))
}

// Get returns one template. The creator or an admin may read it.
//
// @Summary      Get a template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Template id"
// @Success      200  {object}  templateResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /templates/{id} [get]
func (h *TemplateHandler) Get(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	tmpl, err := h.templates.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	creator := h.resolveCreator(c.Request().Context(), actor, tmpl.CreatedBy)
	return c.JSON(http.StatusOK, toTemplateResponseWithCreator(tmpl, creator))
}

// Create stores a new template owned by the caller.
//
// @Summary      Create a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTemplateRequest  true  "Template content"
// @Success      200   {object}  templateResponse
// @Failure      400   {object}  errorResponse
// @Router       /templates [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tmpl, err := h.templates.Create(c.Request().Context(), actor, ports.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
		Elements:    req.Elements,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTemplateResponseWithCreator(tmpl, actor))
}

// Update applies a sparse update to a template the caller may modify.
//
// @Summary      Update a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                    true  "Template id"
// @Param        body  body  updateTemplateRequest  true  "Fields to update"
// @Success      200   {object}  templateResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /templates/{id} [put]
func (h *TemplateHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	tmpl, err := h.templates.Update(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return err
	}
	creator := h.resolveCreator(c.Request().Context(), actor, tmpl.CreatedBy)
	return c.JSON(http.StatusOK, toTemplateResponseWithCreator(tmpl, creator))
}

// Delete removes a template the caller may modify.
//
// @Summary      Delete a template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Template id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /templates/{id} [delete]
func (h *TemplateHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.templates.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Template deleted successfully"})
}
