// Package goal exposes the savings-goal endpoints.
package goal

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/middleware"
	goalsvc "github.com/pocketfin/pocketfin/pkg/service/goal"
	"github.com/pocketfin/pocketfin/webapi/common"
)

// Routes registers the /api/goal endpoints.
func Routes(app fiber.Router, svc *goalsvc.Service, cfg *config.Jwt) {
	goal := app.Group("/goal", middleware.Protected(cfg))
	goal.Post("/", Create(svc))
	goal.Get("/", List(svc))
	goal.Get("/:id/progress", Progress(svc))
	goal.Get("/:id", Get(svc))
	goal.Put("/:id", Update(svc))
	goal.Delete("/:id", Delete(svc))
}

// Create stores a goal with at least one account or tag target.
// @Summary Create goal
// @Tags goals
// @Param request body dto.GoalCreate true "Goal data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/goal [post]
func Create(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		input, err := common.BindAndValidate[dto.GoalCreate](c)
		if input == nil {
			return err
		}
		g, err := svc.Create(c.UserContext(), identity.UserID, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, goalFailureTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Meta creada", g)
	}
}

// List returns every goal the caller owns.
// @Summary List goals
// @Tags goals
// @Success 200 {object} common.Response
// @Router /api/goal [get]
func List(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		list, err := svc.List(c.UserContext(), identity.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudieron listar las metas", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Metas", list)
	}
}

// Get returns one of the caller's goals.
// @Summary Get goal
// @Tags goals
// @Param id path int true "Goal id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/goal/{id} [get]
func Get(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		g, err := svc.Get(c.UserContext(), identity.UserID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Meta no encontrada", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Meta", g)
	}
}

// Progress recomputes and returns the goal's actual progress.
// @Summary Get goal progress
// @Tags goals
// @Param id path int true "Goal id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/goal/{id}/progress [get]
func Progress(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		g, err := svc.Progress(c.UserContext(), identity.UserID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Meta no encontrada", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Progreso de la meta", g)
	}
}

// Update applies a partial update; a non-nil targets list replaces the whole
// target set.
// @Summary Update goal
// @Tags goals
// @Param id path int true "Goal id"
// @Param request body dto.GoalUpdate true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/goal/{id} [put]
func Update(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[dto.GoalUpdate](c)
		if input == nil {
			return err
		}
		g, err := svc.Update(c.UserContext(), identity.UserID, id, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, goalFailureTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Meta actualizada", g)
	}
}

// Delete removes one of the caller's goals.
// @Summary Delete goal
// @Tags goals
// @Param id path int true "Goal id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/goal/{id} [delete]
func Delete(svc *goalsvc.Service) fiber.Handler {
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
			return common.ProblemDetailsJSON(c, "Meta no encontrada", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Meta eliminada", nil)
	}
}

func goalFailureTitle(err error) string {
	switch common.ErrorToStatusCode(err) {
	case fiber.StatusNotFound:
		return "Meta no encontrada"
	case fiber.StatusBadRequest:
		return "La meta debe tener al menos un objetivo"
	default:
		return "No se pudo procesar la meta"
	}
}
