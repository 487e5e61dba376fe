// Package auth exposes the authentication endpoints: signup, the two login
// realms, logout, profile management, and the password recovery flow.
package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/middleware"
	authsvc "github.com/pocketfin/pocketfin/pkg/service/auth"
	usersvc "github.com/pocketfin/pocketfin/pkg/service/user"
	"github.com/pocketfin/pocketfin/webapi/common"
)

// DeviceCookie carries the stable per-device id used to key login sessions.
const DeviceCookie = "deviceId"

// SignupInput is the signup request body.
type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Nickname string `json:"nickname" validate:"max=50"`
}

// LoginInput accepts both the English and the Spanish credential field
// names; either pair works.
type LoginInput struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	CorreoElectronico string `json:"correoElectronico"`
	Contrasena        string `json:"contraseña"`
}

func (in *LoginInput) normalize() (email, password string) {
	email, password = in.Email, in.Password
	if email == "" {
		email = in.CorreoElectronico
	}
	if password == "" {
		password = in.Contrasena
	}
	return email, password
}

// RecoverInput is the password-recovery request body.
type RecoverInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetInput is the password-reset request body.
type ResetInput struct {
	Password string `json:"password" validate:"required"`
}

// Routes registers the /api/auth endpoints.
func Routes(
	app fiber.Router,
	authSvc *authsvc.Service,
	userSvc *usersvc.Service,
	cfg *config.Jwt,
) {
	auth := app.Group("/auth")
	auth.Post("/signup", Signup(authSvc, cfg))
	auth.Post("/login", Login(authSvc, cfg))
	auth.Post("/admin/login", AdminLogin(authSvc, cfg))
	auth.Post("/logout", middleware.Protected(cfg), Logout(authSvc))
	auth.Get("/profile", middleware.Protected(cfg), GetProfile(userSvc))
	auth.Put("/profile", middleware.Protected(cfg), UpdateProfile(userSvc))
	auth.Delete("/profile", middleware.Protected(cfg), DeleteProfile(userSvc))
	auth.Post("/recover", Recover(authSvc))
	auth.Post("/reset/:token", Reset(authSvc))
}

// Signup registers a new user and signs them in right away: the response
// carries the auth cookie and the login is recorded like any other.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupInput true "Signup data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/auth/signup [post]
func Signup(authSvc *authsvc.Service, cfg *config.Jwt) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SignupInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Signup(c.UserContext(), input.Email, input.Password, input.Nickname)
		if err != nil {
			return common.ProblemDetailsJSON(c, signupFailureTitle(err), err)
		}
		if err := issueSession(c, authSvc, cfg, u, false); err != nil {
			return err
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusCreated, "Usuario registrado correctamente", u)
	}
}

func signupFailureTitle(err error) string {
	if common.ErrorToStatusCode(err) == fiber.StatusBadRequest {
		return "El correo electrónico ya está registrado"
	}
	return "Error interno del servidor"
}

// Login authenticates a user and sets the auth cookie.
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Credentials"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/auth/login [post]
func Login(authSvc *authsvc.Service, cfg *config.Jwt) fiber.Handler {
	return loginHandler(authSvc, cfg, false)
}

// AdminLogin authenticates an admin and sets the admin auth cookie.
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Credentials"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /api/auth/admin/login [post]
func AdminLogin(authSvc *authsvc.Service, cfg *config.Jwt) fiber.Handler {
	return loginHandler(authSvc, cfg, true)
}

func loginHandler(authSvc *authsvc.Service, cfg *config.Jwt, admin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		email, password := input.normalize()
		if email == "" || password == "" {
			return common.ProblemDetailsJSON(
				c, "Validación fallida", domain.ErrValidation,
				"correo y contraseña son obligatorios")
		}

		var u *dto.UserRead
		if admin {
			u, err = authSvc.AdminLogin(c.UserContext(), email, password)
		} else {
			u, err = authSvc.Login(c.UserContext(), email, password)
		}
		if err != nil {
			title := "Credenciales inválidas"
			if common.ErrorToStatusCode(err) == fiber.StatusForbidden {
				title = "Acceso denegado"
			}
			return common.ProblemDetailsJSON(c, title, err)
		}

		if err := issueSession(c, authSvc, cfg, u, admin); err != nil {
			return err
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Inicio de sesión exitoso", u)
	}
}

// issueSession mints the realm token, sets the auth and device cookies, and
// records the login session. On failure the problem response is already
// written; the caller just returns the error.
func issueSession(
	c *fiber.Ctx,
	authSvc *authsvc.Service,
	cfg *config.Jwt,
	u *dto.UserRead,
	admin bool,
) error {
	var token string
	var err error
	if admin {
		token, err = authSvc.GenerateAdminToken(u)
	} else {
		token, err = authSvc.GenerateToken(u)
	}
	if err != nil {
		return common.ProblemDetailsJSON(c, "Error interno del servidor", err)
	}

	deviceID := ensureDeviceCookie(c)
	if err := authSvc.RecordLogin(c.UserContext(), u.ID, authsvc.DeviceLogin{
		DeviceID:  deviceID,
		UserAgent: c.Get(fiber.HeaderUserAgent),
		IP:        c.IP(),
	}); err != nil {
		return common.ProblemDetailsJSON(c, "Error interno del servidor", err)
	}

	cookieName := middleware.UserCookie
	if admin {
		cookieName = middleware.AdminCookie
	}
	setAuthCookie(c, cookieName, token, cfg.Expiry)
	return nil
}

// Logout clears the auth cookies and revokes the device session.
// @Summary Logout
// @Tags auth
// @Success 200 {object} common.Response
// @Router /api/auth/logout [post]
func Logout(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		if err := authSvc.RevokeSession(
			c.UserContext(), identity.UserID, c.Cookies(DeviceCookie)); err != nil {
			return common.ProblemDetailsJSON(c, "Error interno del servidor", err)
		}
		expireCookie(c, middleware.UserCookie)
		expireCookie(c, middleware.AdminCookie)
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Sesión cerrada", nil)
	}
}

// GetProfile returns the authenticated user's profile.
// @Summary Get profile
// @Tags auth
// @Success 200 {object} common.Response
// @Router /api/auth/profile [get]
func GetProfile(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		u, err := userSvc.Get(c.UserContext(), identity.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Usuario no encontrado", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Perfil", u)
	}
}

// UpdateProfile applies a partial update to the authenticated user.
// @Summary Update profile
// @Tags auth
// @Param request body dto.UserUpdate true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/auth/profile [put]
func UpdateProfile(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		input, err := common.BindAndValidate[dto.UserUpdate](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Update(c.UserContext(), identity.UserID, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo actualizar el perfil", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Perfil actualizado", u)
	}
}

// DeleteProfile permanently deletes the authenticated user.
// @Summary Delete account
// @Tags auth
// @Success 200 {object} common.Response
// @Router /api/auth/profile [delete]
func DeleteProfile(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFromCtx(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "No autorizado", domain.ErrUnauthorized)
		}
		if err := userSvc.Delete(c.UserContext(), identity.UserID); err != nil {
			return common.ProblemDetailsJSON(c, "No se pudo eliminar la cuenta", err)
		}
		expireCookie(c, middleware.UserCookie)
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cuenta eliminada", nil)
	}
}

// Recover opens a password-reset window. The response is identical whether
// or not the email is registered.
// @Summary Request password recovery
// @Tags auth
// @Param request body RecoverInput true "Email"
// @Success 202 {object} common.Response
// @Router /api/auth/recover [post]
func Recover(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RecoverInput](c)
		if input == nil {
			return err
		}
		if err := authSvc.Recover(c.UserContext(), input.Email); err != nil {
			return common.ProblemDetailsJSON(c, "Error interno del servidor", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusAccepted,
			"Si el correo está registrado, recibirás instrucciones para restablecer tu contraseña",
			nil)
	}
}

// Reset consumes a reset token and stores the new password.
// @Summary Reset password
// @Tags auth
// @Param token path string true "Reset token"
// @Param request body ResetInput true "New password"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/auth/reset/{token} [post]
func Reset(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ResetInput](c)
		if input == nil {
			return err
		}
		err = authSvc.ResetPassword(c.UserContext(), c.Params("token"), input.Password)
		if err != nil {
			title := "Token de restablecimiento inválido o expirado"
			if errors.Is(err, domain.ErrWeakPassword) {
				title = "La contraseña no cumple los requisitos mínimos"
			}
			return common.ProblemDetailsJSON(c, title, err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Contraseña actualizada", nil)
	}
}

func ensureDeviceCookie(c *fiber.Ctx) string {
	deviceID := c.Cookies(DeviceCookie)
	if deviceID == "" {
		deviceID = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     DeviceCookie,
			Value:    deviceID,
			Expires:  time.Now().Add(365 * 24 * time.Hour),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
		})
	}
	return deviceID
}

func setAuthCookie(c *fiber.Ctx, name, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    token,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func expireCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
