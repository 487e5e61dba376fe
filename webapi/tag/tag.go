// Package tag exposes tag-pocket endpoints scoped through account ownership.
package tag

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/middleware"
	tagsvc "github.com/pocketfin/pocketfin/pkg/service/tag"
	"github.com/pocketfin/pocketfin/webapi/common"
)

// Routes registers the /api/tag endpoints.
func Routes(app fiber.Router, svc *tagsvc.Service, cfg *config.Jwt) {
	tag := app.Group("/tag", middleware.Protected(cfg))
	tag.Post("/", Create(svc))
	tag.Get("/account/:accountId", ListByAccount(svc))
	tag.Get("/:id", Get(svc))
	tag.Put("/:id", Update(svc))
	tag.Delete("/:id", Delete(svc))
}

// Create adds a tag pocket to one of the caller's accounts.
// @Summary Create tag
// @Tags tags
// @Param request body dto.TagCreate true "Tag data"
// @Success 201 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/tag [post]
func Create(svc *tagsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		input, err := common.BindAndValidate[dto.TagCreate](c)
		if input == nil {
			return err
		}
		t, err := svc.Create(c.UserContext(), identity.UserID, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo crear la etiqueta", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Etiqueta creada", t)
	}
}

// ListByAccount returns the tags of one of the caller's accounts.
// @Summary List tags by account
// @Tags tags
// @Param accountId path int true "Account id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/tag/account/{accountId} [get]
func ListByAccount(svc *tagsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		accountID, err := common.ParamID(c, "accountId")
		if err != nil {
			return err
		}
		list, err := svc.ListByAccount(c.UserContext(), identity.UserID, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudieron listar las etiquetas", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Etiquetas", list)
	}
}

// Get returns one of the caller's tags.
// @Summary Get tag
// @Tags tags
// @Param id path int true "Tag id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/tag/{id} [get]
func Get(svc *tagsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		t, err := svc.Get(c.UserContext(), identity.UserID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Etiqueta no encontrada", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Etiqueta", t)
	}
}

// Update applies a partial update to one of the caller's tags.
// @Summary Update tag
// @Tags tags
// @Param id path int true "Tag id"
// @Param request body dto.TagUpdate true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/tag/{id} [put]
func Update(svc *tagsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[dto.TagUpdate](c)
		if input == nil {
			return err
		}
		t, err := svc.Update(c.UserContext(), identity.UserID, id, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo actualizar la etiqueta", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Etiqueta actualizada", t)
	}
}

// Delete removes one of the caller's tags.
// @Summary Delete tag
// @Tags tags
// @Param id path int true "Tag id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/tag/{id} [delete]
func Delete(svc *tagsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), identity.UserID, id); err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo eliminar la etiqueta", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Etiqueta eliminada", nil)
	}
}
