// Package transaction exposes the ledger endpoints, including the dated
// query routes.
package transaction

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/middleware"
	transactionsvc "github.com/pocketfin/pocketfin/pkg/service/transaction"
	"github.com/pocketfin/pocketfin/webapi/common"
)

// Routes registers the /api/transaction endpoints. The query routes must be
// registered before the /:id routes.
func Routes(app fiber.Router, svc *transactionsvc.Service, cfg *config.Jwt) {
	tx := app.Group("/transaction", middleware.Protected(cfg))
	tx.Post("/", Create(svc))
	tx.Get("/byDate", ListByDate(svc))
	tx.Get("/byTypeDate", ListByTypeAndDate(svc))
	tx.Get("/tag/:tagId", ListByTag(svc))
	tx.Get("/:id", Get(svc))
	tx.Put("/:id", Update(svc))
	tx.Delete("/:id", Delete(svc))
}

// Create records a transaction and applies its effect to the account
// balance. A resulting negative balance is rejected with 409 and nothing is
// persisted.
// @Summary Create transaction
// @Tags transactions
// @Param request body dto.TransactionCreate true "Transaction data"
// @Success 201 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/transaction [post]
func Create(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		input, err := common.BindAndValidate[dto.TransactionCreate](c)
		if input == nil {
			return err
		}
		t, err := svc.Create(c.UserContext(), identity.UserID, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, createFailureTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transacción registrada", t)
	}
}

// Get returns one of the caller's transactions.
// @Summary Get transaction
// @Tags transactions
// @Param id path int true "Transaction id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transaction/{id} [get]
func Get(svc *transactionsvc.Service) fiber.Handler {
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
			return common.ProblemDetailsJSON(c, "Transacción no encontrada", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transacción", t)
	}
}

// ListByTag returns the transactions of one of the caller's tag pockets.
// @Summary List transactions by tag
// @Tags transactions
// @Param tagId path int true "Tag id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transaction/tag/{tagId} [get]
func ListByTag(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		tagID, err := common.ParamID(c, "tagId")
		if err != nil {
			return err
		}
		list, err := svc.ListByTag(c.UserContext(), identity.UserID, tagID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudieron listar las transacciones", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transacciones", list)
	}
}

// ListByDate returns the caller's transactions in a date range.
// @Summary List transactions by date range
// @Tags transactions
// @Param from query string true "Range start (RFC 3339 or YYYY-MM-DD)"
// @Param to query string true "Range end"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/transaction/byDate [get]
func ListByDate(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		from, to, err := dateRange(c)
		if err != nil {
			return err
		}
		list, err := svc.ListByDate(c.UserContext(), identity.UserID, from, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudieron listar las transacciones", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transacciones", list)
	}
}

// ListByTypeAndDate returns the caller's income or expense transactions in a
// date range.
// @Summary List transactions by type and date range
// @Tags transactions
// @Param isIncome query bool true "true for income, false for expense"
// @Param from query string true "Range start"
// @Param to query string true "Range end"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/transaction/byTypeDate [get]
func ListByTypeAndDate(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		from, to, err := dateRange(c)
		if err != nil {
			return err
		}
		isIncome := c.QueryBool("isIncome")
		list, err := svc.ListByTypeAndDate(c.UserContext(), identity.UserID, isIncome, from, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudieron listar las transacciones", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transacciones", list)
	}
}

// Update modifies a transaction, reversing the old effect and applying the
// new one atomically.
// @Summary Update transaction
// @Tags transactions
// @Param id path int true "Transaction id"
// @Param request body dto.TransactionUpdate true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/transaction/{id} [put]
func Update(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		id, err := common.ParamID(c, "id")
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[dto.TransactionUpdate](c)
		if input == nil {
			return err
		}
		t, err := svc.Update(c.UserContext(), identity.UserID, id, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, createFailureTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transacción actualizada", t)
	}
}

// Delete removes a transaction, reversing its balance effect.
// @Summary Delete transaction
// @Tags transactions
// @Param id path int true "Transaction id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/transaction/{id} [delete]
func Delete(svc *transactionsvc.Service) fiber.Handler {
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
			return common.ProblemDetailsJSON(c, createFailureTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transacción eliminada", nil)
	}
}

func createFailureTitle(err error) string {
	switch common.ErrorToStatusCode(err) {
	case fiber.StatusConflict:
		return "Saldo insuficiente"
	case fiber.StatusNotFound:
		return "Transacción no encontrada"
	default:
		return "No se pudo procesar la transacción"
	}
}

// dateRange parses the from/to query parameters, accepting RFC 3339
// timestamps or bare dates. On failure the error response is already
// written.
func dateRange(c *fiber.Ctx) (from, to time.Time, err error) {
	from, err = parseDate(c.Query("from"))
	if err == nil {
		to, err = parseDate(c.Query("to"))
	}
	if err != nil {
		return from, to, common.ProblemDetailsJSON(
			c, "Rango de fechas inválido", domain.ErrValidation,
			"los parámetros from y to deben ser fechas válidas")
	}
	// A bare end date means the whole day.
	if to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
