package common

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/pkg/domain"
)

// ParamID parses a positive numeric path parameter. On failure the error
// response is already written; the caller just returns the error.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, ProblemDetailsJSON(
			c, "Identificador inválido", domain.ErrValidation,
			"el parámetro "+name+" debe ser un número positivo")
	}
	return uint(id), nil
}
