// Package account exposes owner-scoped account endpoints.
package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/middleware"
	accountsvc "github.com/pocketfin/pocketfin/pkg/service/account"
	"github.com/pocketfin/pocketfin/webapi/common"
)

// Routes registers the /api/account endpoints.
func Routes(app fiber.Router, svc *accountsvc.Service, cfg *config.Jwt) {
	account := app.Group("/account", middleware.Protected(cfg))
	account.Post("/", Create(svc))
	account.Get("/:userId", List(svc))
	account.Put("/:id", Update(svc))
	account.Delete("/:id", Delete(svc))
}

// Create opens a new account for the caller.
// @Summary Create account
// @Tags accounts
// @Param request body dto.AccountCreate true "Account data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/account [post]
func Create(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		input, err := common.BindAndValidate[dto.AccountCreate](c)
		if input == nil {
			return err
		}
		a, err := svc.Create(c.UserContext(), identity.UserID, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo crear la cuenta", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Cuenta creada", a)
	}
}

// List returns the accounts of a user. Callers may only list their own.
// @Summary List accounts
// @Tags accounts
// @Param userId path int true "User id"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /api/account/{userId} [get]
func List(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		userID, err := common.ParamID(c, "userId")
		if err != nil {
			return err
		}
		if userID != identity.UserID {
			return common.ProblemDetailsJSON(c, "Acceso denegado", domain.ErrForbidden)
		}
		list, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudieron listar las cuentas", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cuentas", list)
	}
}

// Update applies a partial update to one of the caller's accounts.
// @Summary Update account
// @Tags accounts
// @Param id path int true "Account id"
// @Param request body dto.AccountUpdate true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/account/{id} [put]
func Update(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[dto.AccountUpdate](c)
		if input == nil {
			return err
		}
		a, err := svc.Update(c.UserContext(), identity.UserID, id, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo actualizar la cuenta", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cuenta actualizada", a)
	}
}

// Delete removes one of the caller's accounts.
// @Summary Delete account
// @Tags accounts
// @Param id path int true "Account id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/account/{id} [delete]
func Delete(svc *accountsvc.Service) fiber.Handler {
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
			return common.ProblemDetailsJSON(c, "No se pudo eliminar la cuenta", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cuenta eliminada", nil)
	}
}
