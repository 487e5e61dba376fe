// Package category exposes the category lookup endpoints.
package category

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/middleware"
	categorysvc "github.com/pocketfin/pocketfin/pkg/service/category"
	"github.com/pocketfin/pocketfin/webapi/common"
)

// Routes registers the /api/category endpoints.
func Routes(app fiber.Router, svc *categorysvc.Service, cfg *config.Jwt) {
	category := app.Group("/category", middleware.Protected(cfg))
	category.Post("/", Create(svc))
	category.Get("/", List(svc))
	category.Get("/:id", Get(svc))
	category.Put("/:id", Update(svc))
	category.Delete("/:id", Delete(svc))
}

// Create adds a category.
// @Summary Create category
// @Tags categories
// @Param request body dto.CategoryCreate true "Category data"
// @Success 201 {object} common.Response
// @Router /api/category [post]
func Create(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.CategoryCreate](c)
		if input == nil {
			return err
		}
		cat, err := svc.Create(c.UserContext(), input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo crear la categoría", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Categoría creada", cat)
	}
}

// List returns every category.
// @Summary List categories
// @Tags categories
// @Success 200 {object} common.Response
// @Router /api/category [get]
func List(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudieron listar las categorías", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categorías", list)
	}
}

// Get returns one category.
// @Summary Get category
// @Tags categories
// @Param id path int true "Category id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/category/{id} [get]
func Get(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		cat, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Categoría no encontrada", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categoría", cat)
	}
}

// Update renames a category.
// @Summary Update category
// @Tags categories
// @Param id path int true "Category id"
// @Param request body dto.CategoryUpdate true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/category/{id} [put]
func Update(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[dto.CategoryUpdate](c)
		if input == nil {
			return err
		}
		cat, err := svc.Update(c.UserContext(), id, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo actualizar la categoría", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categoría actualizada", cat)
	}
}

// Delete removes a category.
// @Summary Delete category
// @Tags categories
// @Param id path int true "Category id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/category/{id} [delete]
func Delete(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo eliminar la categoría", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categoría eliminada", nil)
	}
}
