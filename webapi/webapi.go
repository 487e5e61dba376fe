// Package webapi assembles the HTTP surface. Each resource lives in its own
// sub-package; this file builds the Fiber app, global middleware, and the
// /api route tree.
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/pocketfin/pocketfin/pkg/app"
	accountweb "github.com/pocketfin/pocketfin/webapi/account"
	adminweb "github.com/pocketfin/pocketfin/webapi/admin"
	authweb "github.com/pocketfin/pocketfin/webapi/auth"
	categoryweb "github.com/pocketfin/pocketfin/webapi/category"
	chatweb "github.com/pocketfin/pocketfin/webapi/chat"
	"github.com/pocketfin/pocketfin/webapi/common"
	goalweb "github.com/pocketfin/pocketfin/webapi/goal"
	tagweb "github.com/pocketfin/pocketfin/webapi/tag"
	transactionweb "github.com/pocketfin/pocketfin/webapi/transaction"
)

// SetupApp initializes Fiber with global middleware and every route group.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "PocketFin API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Error interno del servidor", err)
		},
	})

	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
	}))

	// Rate limiting keyed by the originating client IP; respects
	// X-Forwarded-For when behind a proxy.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Demasiadas solicitudes",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins:     a.Config.Server.FrontendURL,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("PocketFin API is running")
	})

	api := fiberApp.Group("/api")
	authweb.Routes(api, a.AuthService, a.UserService, a.Config.Jwt)
	accountweb.Routes(api, a.AccountService, a.Config.Jwt)
	categoryweb.Routes(api, a.CategoryService, a.Config.Jwt)
	tagweb.Routes(api, a.TagService, a.Config.Jwt)
	transactionweb.Routes(api, a.TransactionService, a.Config.Jwt)
	goalweb.Routes(api, a.GoalService, a.Config.Jwt)
	adminweb.Routes(api, a.AdminService, a.Config.Jwt)
	chatweb.Routes(api, a.ChatService, a.Config.Jwt)
	return fiberApp
}
