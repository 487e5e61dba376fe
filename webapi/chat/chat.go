// Package chat exposes the per-account assistant endpoints.
package chat

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/middleware"
	chatsvc "github.com/pocketfin/pocketfin/pkg/service/chat"
	"github.com/pocketfin/pocketfin/webapi/common"
)

// AskInput is the chat question body.
type AskInput struct {
	Question string `json:"question" validate:"required,max=2000"`
}

// Routes registers the /api/chat endpoints.
func Routes(app fiber.Router, svc *chatsvc.Service, cfg *config.Jwt) {
	chat := app.Group("/chat", middleware.Protected(cfg))
	chat.Post("/:accountId", Ask(svc))
	chat.Get("/:accountId", History(svc))
}

// Ask answers a question about one of the caller's accounts and persists the
// exchange.
// @Summary Ask the assistant
// @Tags chat
// @Param accountId path int true "Account id"
// @Param request body AskInput true "Question"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/chat/{accountId} [post]
func Ask(svc *chatsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		accountID, err := common.ParamID(c, "accountId")
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[AskInput](c)
		if input == nil {
			return err
		}
		m, err := svc.Ask(c.UserContext(), identity.UserID, accountID, input.Question)
		if err != nil {
			title := "No se pudo obtener una respuesta"
			if common.ErrorToStatusCode(err) == fiber.StatusNotFound {
				title = "Cuenta no encontrada"
			}
			return common.ProblemDetailsJSON(c, title, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Respuesta del asistente", m)
	}
}

// History returns the account's chat thread.
// @Summary Chat history
// @Tags chat
// @Param accountId path int true "Account id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/chat/{accountId} [get]
func History(svc *chatsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		accountID, err := common.ParamID(c, "accountId")
		if err != nil {
			return err
		}
		thread, err := svc.History(c.UserContext(), identity.UserID, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Cuenta no encontrada", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Historial del chat", thread)
	}
}
