// Package middleware implements cookie-based JWT authentication. Three
// variants share one verifier and differ only in cookie name, signing
// secret, and required role.
package middleware

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/webapi/common"
)

// Cookie names for the two auth realms.
const (
	UserCookie  = "authToken"
	AdminCookie = "adminAuthToken"
)

const identityKey = "identity"

// Identity is the per-request caller identity attached by the middleware.
type Identity struct {
	UserID uint
	Email  string
	Role   domain.Role
}

// IdentityFromCtx returns the identity attached by a Protected variant.
func IdentityFromCtx(c *fiber.Ctx) (*Identity, bool) {
	id, ok := c.Locals(identityKey).(*Identity)
	return id, ok
}

// Protected verifies the user cookie and attaches the caller identity.
func Protected(cfg *config.Jwt) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := verifyCookie(c, UserCookie, cfg.Secret)
		if err != nil {
			return authProblem(c, err)
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// AdminProtected verifies the admin cookie and requires an admin or
// super-admin role claim.
func AdminProtected(cfg *config.Jwt) fiber.Handler {
	return roleProtected(cfg, domain.Role.IsAdmin)
}

// SuperAdminProtected verifies the admin cookie and requires exactly the
// super_admin role.
func SuperAdminProtected(cfg *config.Jwt) fiber.Handler {
	return roleProtected(cfg, domain.Role.IsSuperAdmin)
}

func roleProtected(cfg *config.Jwt, allowed func(domain.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := verifyCookie(c, AdminCookie, cfg.AdminSecretOrFallback())
		if err != nil {
			return authProblem(c, err)
		}
		if !allowed(identity.Role) {
			return common.ProblemDetailsJSON(
				c, "Acceso denegado", domain.ErrForbidden)
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

func verifyCookie(c *fiber.Ctx, cookieName, secret string) (*Identity, error) {
	tokenString := c.Cookies(cookieName)
	if tokenString == "" {
		return nil, domain.ErrUnauthorized
	}
	if secret == "" {
		return nil, domain.ErrSecretNotConfigured
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	// A structurally valid token without a user id is still unauthorized.
	userIDRaw, ok := claims["userId"].(float64)
	if !ok || userIDRaw <= 0 {
		return nil, domain.ErrUnauthorized
	}

	identity := &Identity{UserID: uint(userIDRaw), Role: domain.RoleUser}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if roleRaw, ok := claims["role"].(string); ok {
		if role, valid := domain.ParseRole(roleRaw); valid {
			identity.Role = role
		}
	}
	return identity, nil
}

func authProblem(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrSecretNotConfigured) {
		return common.ProblemDetailsJSON(c, "Error interno del servidor", err)
	}
	return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
}
