package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testApp(cfg *config.Jwt) *fiber.App {
	app := fiber.New()
	app.Get("/user", middleware.Protected(cfg), func(c *fiber.Ctx) error {
		identity, _ := middleware.IdentityFromCtx(c)
		return c.JSON(identity)
	})
	app.Get("/admin", middleware.AdminProtected(cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/super", middleware.SuperAdminProtected(cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func request(t *testing.T, app *fiber.App, path, cookieName, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestProtectedWithoutCookie(t *testing.T) {
	app := testApp(&config.Jwt{Secret: testSecret})
	resp := request(t, app, "/user", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedWithGarbageToken(t *testing.T) {
	app := testApp(&config.Jwt{Secret: testSecret})
	resp := request(t, app, "/user", middleware.UserCookie, "not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedWithWrongSecret(t *testing.T) {
	app := testApp(&config.Jwt{Secret: testSecret})
	token := signToken(t, "another-secret", jwt.MapClaims{"userId": 1})
	resp := request(t, app, "/user", middleware.UserCookie, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedWithExpiredToken(t *testing.T) {
	app := testApp(&config.Jwt{Secret: testSecret})
	token := signToken(t, testSecret, jwt.MapClaims{
		"userId": 1,
		"exp":    time.Now().Add(-time.Minute).Unix(),
	})
	resp := request(t, app, "/user", middleware.UserCookie, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedWithoutUserIDClaim(t *testing.T) {
	app := testApp(&config.Jwt{Secret: testSecret})
	token := signToken(t, testSecret, jwt.MapClaims{"email": "ana@example.com"})
	resp := request(t, app, "/user", middleware.UserCookie, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedHappyPath(t *testing.T) {
	app := testApp(&config.Jwt{Secret: testSecret})
	token := signToken(t, testSecret, jwt.MapClaims{
		"userId": 7,
		"email":  "ana@example.com",
		"role":   "user",
	})
	resp := request(t, app, "/user", middleware.UserCookie, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectedWithoutSecretConfigured(t *testing.T) {
	app := testApp(&config.Jwt{})
	token := signToken(t, testSecret, jwt.MapClaims{"userId": 1})
	resp := request(t, app, "/user", middleware.UserCookie, token)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestAdminRejectsUserRole(t *testing.T) {
	app := testApp(&config.Jwt{Secret: testSecret})
	token := signToken(t, testSecret, jwt.MapClaims{"userId": 1, "role": "user"})
	resp := request(t, app, "/admin", middleware.AdminCookie, token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminRejectsMissingRole(t *testing.T) {
	app := testApp(&config.Jwt{Secret: testSecret})
	token := signToken(t, testSecret, jwt.MapClaims{"userId": 1})
	resp := request(t, app, "/admin", middleware.AdminCookie, token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminAcceptsAdminAndSuperAdmin(t *testing.T) {
	app := testApp(&config.Jwt{Secret: testSecret})
	for _, role := range []string{"admin", "super_admin"} {
		token := signToken(t, testSecret, jwt.MapClaims{"userId": 1, "role": role})
		resp := request(t, app, "/admin", middleware.AdminCookie, token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "role %s", role)
	}
}

func TestAdminUsesDedicatedSecret(t *testing.T) {
	cfg := &config.Jwt{Secret: testSecret, AdminSecret: "admin-secret"}
	app := testApp(cfg)

	// A token signed with the user secret must not open the admin realm.
	token := signToken(t, testSecret, jwt.MapClaims{"userId": 1, "role": "admin"})
	resp := request(t, app, "/admin", middleware.AdminCookie, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token = signToken(t, "admin-secret", jwt.MapClaims{"userId": 1, "role": "admin"})
	resp = request(t, app, "/admin", middleware.AdminCookie, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSuperAdminRejectsPlainAdmin(t *testing.T) {
	app := testApp(&config.Jwt{Secret: testSecret})
	token := signToken(t, testSecret, jwt.MapClaims{"userId": 1, "role": "admin"})
	resp := request(t, app, "/super", middleware.AdminCookie, token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	token = signToken(t, testSecret, jwt.MapClaims{"userId": 1, "role": "super_admin"})
	resp = request(t, app, "/super", middleware.AdminCookie, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUserCookieIgnoredOnAdminRoutes(t *testing.T) {
	app := testApp(&config.Jwt{Secret: testSecret})
	token := signToken(t, testSecret, jwt.MapClaims{"userId": 1, "role": "admin"})

	req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: middleware.UserCookie, Value: token})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
