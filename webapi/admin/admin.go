// Package admin exposes the administrative endpoints. All routes require the
// admin cookie realm; admin creation additionally requires the super_admin
// role.
package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/middleware"
	adminsvc "github.com/pocketfin/pocketfin/pkg/service/admin"
	"github.com/pocketfin/pocketfin/webapi/common"
)

// ModerateInput toggles a user's soft-deleted state.
type ModerateInput struct {
	Disabled *bool `json:"disabled" validate:"required"`
}

// CreateAdminInput promotes an existing user or creates a new admin.
type CreateAdminInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Nickname string `json:"nickname" validate:"max=50"`
}

// Routes registers the /api/admin endpoints.
func Routes(app fiber.Router, svc *adminsvc.Service, cfg *config.Jwt) {
	admin := app.Group("/admin", middleware.AdminProtected(cfg))
	admin.Get("/logs/login", LoginLogs(svc))
	admin.Get("/users", ListUsers(svc))
	admin.Put("/users/:id", ModerateUser(svc))
	admin.Delete("/users/:id", DisableUser(svc))
	admin.Get("/stats/users", UserStats(svc))
	admin.Get("/stats/transactions", TransactionStats(svc))
	admin.Get("/admins", ListAdmins(svc))
	admin.Post("/admins", middleware.SuperAdminProtected(cfg), CreateAdmin(svc))
}

// LoginLogs pages through the login log.
// @Summary Login log
// @Tags admin
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} common.Response
// @Router /api/admin/logs/login [get]
func LoginLogs(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := svc.LoginLogs(
			c.UserContext(), c.QueryInt("page", 1), c.QueryInt("pageSize", 20))
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo obtener el registro", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Registro de inicios de sesión", logs)
	}
}

// ListUsers returns every registered user.
// @Summary List users
// @Tags admin
// @Success 200 {object} common.Response
// @Router /api/admin/users [get]
func ListUsers(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListUsers(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudieron listar los usuarios", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Usuarios", list)
	}
}

// ModerateUser soft-deletes or restores a user.
// @Summary Moderate user
// @Tags admin
// @Param id path int true "User id"
// @Param request body ModerateInput true "Disabled flag"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/admin/users/{id} [put]
func ModerateUser(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[ModerateInput](c)
		if input == nil {
			return err
		}
		u, err := svc.SetUserDisabled(c.UserContext(), id, *input.Disabled)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Usuario no encontrado", err)
		}
		message := "Usuario restaurado"
		if u.Disabled {
			message = "Usuario deshabilitado"
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, u)
	}
}

// DisableUser soft-deletes a user. The row survives; login is blocked.
// @Summary Disable user
// @Tags admin
// @Param id path int true "User id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/admin/users/{id} [delete]
func DisableUser(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		u, err := svc.SetUserDisabled(c.UserContext(), id, true)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Usuario no encontrado", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Usuario deshabilitado", u)
	}
}

// UserStats returns the registered-user count.
// @Summary User stats
// @Tags admin
// @Success 200 {object} common.Response
// @Router /api/admin/stats/users [get]
func UserStats(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.UserCount(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudieron obtener las estadísticas", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Usuarios registrados", stats)
	}
}

// TransactionStats returns the platform-wide ledger row count.
// @Summary Transaction stats
// @Tags admin
// @Success 200 {object} common.Response
// @Router /api/admin/stats/transactions [get]
func TransactionStats(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.TransactionCount(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudieron obtener las estadísticas", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transacciones registradas", stats)
	}
}

// ListAdmins returns users holding an elevated role.
// @Summary List admins
// @Tags admin
// @Success 200 {object} common.Response
// @Router /api/admin/admins [get]
func ListAdmins(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListAdmins(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudieron listar los administradores", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Administradores", list)
	}
}

// CreateAdmin promotes an existing user to admin, or creates the admin
// account outright. Super-admin only.
// @Summary Create or promote admin
// @Tags admin
// @Param request body CreateAdminInput true "Admin data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /api/admin/admins [post]
func CreateAdmin(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAdminInput](c)
		if input == nil {
			return err
		}
		u, err := svc.PromoteAdmin(
			c.UserContext(), input.Email, input.Password, input.Nickname)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo crear el administrador", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Administrador creado", u)
	}
}
