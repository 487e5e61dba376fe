package auth_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/infra"
	infraaccount "github.com/pocketfin/pocketfin/infra/repository/account"
	infrasession "github.com/pocketfin/pocketfin/infra/repository/session"
	infratag "github.com/pocketfin/pocketfin/infra/repository/tag"
	infratransaction "github.com/pocketfin/pocketfin/infra/repository/transaction"
	"github.com/pocketfin/pocketfin/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type AuthSuite struct {
	testutils.AppSuite
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestSignupReturnsUser() {
	resp := s.Request(fiber.MethodPost, "/api/auth/signup", fiber.Map{
		"email":    "ana@example.com",
		"password": "secreta1",
		"nickname": "Ana",
	})
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	data := s.Data(resp)
	s.Equal("ana@example.com", data["email"])
	s.Equal("user", data["role"])
	s.NotContains(data, "password")
}

func (s *AuthSuite) TestSignupDuplicateEmail() {
	s.Signup("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/auth/signup", fiber.Map{
		"email":    "ana@example.com",
		"password": "otraclave2",
	})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	body := s.DecodeBody(resp)
	s.Equal("El correo electrónico ya está registrado", body["title"])
}

func (s *AuthSuite) TestSignupSignsIn() {
	resp := s.Request(fiber.MethodPost, "/api/auth/signup", fiber.Map{
		"email":    "ana@example.com",
		"password": "secreta1",
	})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "authToken" && c.Value != "" {
			cookie = c
		}
	}
	s.Require().NotNil(cookie, "signup must set the auth cookie")

	// The fresh cookie opens protected routes without a separate login.
	profile := s.Request(fiber.MethodGet, "/api/auth/profile", nil, cookie)
	s.Equal(fiber.StatusOK, profile.StatusCode)

	// The signup counts as a login in the session log.
	var sessions int64
	s.Require().NoError(s.DB.Model(&infrasession.Session{}).Count(&sessions).Error)
	s.EqualValues(1, sessions)
}

func (s *AuthSuite) TestSignupInternalFailureTitle() {
	s.Require().NoError(infra.CloseDB(s.DB))

	resp := s.Request(fiber.MethodPost, "/api/auth/signup", fiber.Map{
		"email":    "ana@example.com",
		"password": "secreta1",
	})
	s.Equal(fiber.StatusInternalServerError, resp.StatusCode)
	s.Equal("Error interno del servidor", s.DecodeBody(resp)["title"])
}

func (s *AuthSuite) TestLoginEnglishFields() {
	cookie := s.SignupAndLogin("ana@example.com", "secreta1")
	s.NotEmpty(cookie.Value)
}

func (s *AuthSuite) TestLoginSpanishFields() {
	s.Signup("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/auth/login", map[string]string{
		"correoElectronico": "ana@example.com",
		"contraseña":        "secreta1",
	})
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *AuthSuite) TestLoginWrongPassword() {
	s.Signup("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "ana@example.com",
		"password": "equivocada",
	})
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthSuite) TestLoginUnknownEmailSameStatus() {
	resp := s.Request(fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "nadie@example.com",
		"password": "loquesea1",
	})
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthSuite) TestAdminLoginRequiresElevatedRole() {
	s.Signup("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/auth/admin/login", fiber.Map{
		"email":    "ana@example.com",
		"password": "secreta1",
	})
	s.Equal(fiber.StatusForbidden, resp.StatusCode)
}

func (s *AuthSuite) TestProfileRequiresCookie() {
	resp := s.Request(fiber.MethodGet, "/api/auth/profile", nil)
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthSuite) TestProfileRoundTrip() {
	cookie := s.SignupAndLogin("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodGet, "/api/auth/profile", nil, cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("ana@example.com", s.Data(resp)["email"])

	resp = s.Request(fiber.MethodPut, "/api/auth/profile", fiber.Map{
		"nickname": "Anita",
	}, cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("Anita", s.Data(resp)["nickname"])
}

func (s *AuthSuite) TestProfileEmailUniquenessOnUpdate() {
	s.Signup("otra@example.com", "secreta1")
	cookie := s.SignupAndLogin("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPut, "/api/auth/profile", fiber.Map{
		"email": "otra@example.com",
	}, cookie)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AuthSuite) TestDeleteProfile() {
	cookie := s.SignupAndLogin("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodDelete, "/api/auth/profile", nil, cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.Request(fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "ana@example.com",
		"password": "secreta1",
	})
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthSuite) TestDeleteProfileCascades() {
	cookie := s.SignupAndLogin("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/category", fiber.Map{
		"tipo": "corriente",
	}, cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	categoryID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodPost, "/api/account", fiber.Map{
		"name":       "Cuenta",
		"money":      "100",
		"categoryId": categoryID,
	}, cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	accountID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodPost, "/api/tag", fiber.Map{
		"name":      "comida",
		"accountId": accountID,
	}, cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	tagID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodPost, "/api/transaction", fiber.Map{
		"amount": "25", "isIncome": false, "tagId": tagID,
	}, cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	resp = s.Request(fiber.MethodPost, "/api/auth/recover", fiber.Map{
		"email": "ana@example.com",
	})
	s.Require().Equal(fiber.StatusAccepted, resp.StatusCode)

	resp = s.Request(fiber.MethodDelete, "/api/auth/profile", nil, cookie)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	// Nothing owned by the user may survive the delete.
	for name, model := range map[string]any{
		"accounts":     &infraaccount.Account{},
		"tags":         &infratag.Tag{},
		"transactions": &infratransaction.Transaction{},
		"sessions":     &infrasession.Session{},
		"resets":       &infrasession.PasswordReset{},
	} {
		var n int64
		s.Require().NoError(s.DB.Model(model).Count(&n).Error, name)
		s.Zero(n, name)
	}
}

func (s *AuthSuite) TestRecoverResponsesAreIndistinguishable() {
	s.Signup("ana@example.com", "secreta1")

	known := s.Request(fiber.MethodPost, "/api/auth/recover", fiber.Map{
		"email": "ana@example.com",
	})
	unknown := s.Request(fiber.MethodPost, "/api/auth/recover", fiber.Map{
		"email": "nadie@example.com",
	})
	s.Equal(fiber.StatusAccepted, known.StatusCode)
	s.Equal(fiber.StatusAccepted, unknown.StatusCode)
	s.Equal(s.DecodeBody(known)["message"], s.DecodeBody(unknown)["message"])
}

func (s *AuthSuite) TestResetFlow() {
	userID := s.Signup("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/auth/recover", fiber.Map{
		"email": "ana@example.com",
	})
	s.Equal(fiber.StatusAccepted, resp.StatusCode)

	var reset infrasession.PasswordReset
	s.Require().NoError(s.DB.Where("user_id = ?", userID).First(&reset).Error)

	// Weak passwords are rejected before the token is consumed.
	resp = s.Request(fiber.MethodPost, "/api/auth/reset/"+reset.Token, fiber.Map{
		"password": "corta",
	})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = s.Request(fiber.MethodPost, "/api/auth/reset/"+reset.Token, fiber.Map{
		"password": "nuevaclave9",
	})
	s.Equal(fiber.StatusOK, resp.StatusCode)

	// The old credential no longer works, the new one does.
	resp = s.Request(fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "ana@example.com",
		"password": "secreta1",
	})
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	s.Login("ana@example.com", "nuevaclave9")

	// The token is one-shot.
	resp = s.Request(fiber.MethodPost, "/api/auth/reset/"+reset.Token, fiber.Map{
		"password": "otranueva8",
	})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AuthSuite) TestResetUnknownToken() {
	resp := s.Request(fiber.MethodPost, "/api/auth/reset/invent4do", fiber.Map{
		"password": "nuevaclave9",
	})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AuthSuite) TestLogoutClearsCookie() {
	cookie := s.SignupAndLogin("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/auth/logout", nil, cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var cleared *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "authToken" {
			cleared = c
		}
	}
	s.Require().NotNil(cleared)
	s.Empty(cleared.Value)
}
