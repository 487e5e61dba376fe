package admin_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type AdminSuite struct {
	testutils.AppSuite

	adminCookie *http.Cookie
}

func TestAdminSuite(t *testing.T) {
	suite.Run(t, new(AdminSuite))
}

func (s *AdminSuite) SetupTest() {
	s.AppSuite.SetupTest()
	s.GrantRole("root@example.com", "clavemuy8segura", domain.RoleAdmin)
	s.adminCookie = s.AdminLogin("root@example.com", "clavemuy8segura")
}

func (s *AdminSuite) TestUserCookieDoesNotOpenAdminRoutes() {
	s.Signup("ana@example.com", "secreta1")
	userCookie := s.Login("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodGet, "/api/admin/users", nil, userCookie)
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AdminSuite) TestListUsers() {
	s.Signup("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodGet, "/api/admin/users", nil, s.adminCookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(s.DataList(resp), 2) // the admin and the user
}

func (s *AdminSuite) TestDisableAndRestoreUser() {
	userID := s.Signup("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodDelete,
		fmt.Sprintf("/api/admin/users/%d", userID), nil, s.adminCookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal(true, s.Data(resp)["disabled"])

	// Disabled users cannot log in.
	loginResp := s.Request(fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "ana@example.com",
		"password": "secreta1",
	})
	s.Equal(fiber.StatusUnauthorized, loginResp.StatusCode)

	// Restore via the moderation endpoint.
	resp = s.Request(fiber.MethodPut,
		fmt.Sprintf("/api/admin/users/%d", userID), fiber.Map{
			"disabled": false,
		}, s.adminCookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal(false, s.Data(resp)["disabled"])
	s.Login("ana@example.com", "secreta1")
}

func (s *AdminSuite) TestStats() {
	s.Signup("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodGet, "/api/admin/stats/users", nil, s.adminCookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal(float64(2), s.Data(resp)["count"])

	resp = s.Request(fiber.MethodGet, "/api/admin/stats/transactions", nil, s.adminCookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal(float64(0), s.Data(resp)["count"])
}

func (s *AdminSuite) TestLoginLogRecordsSessions() {
	s.Signup("ana@example.com", "secreta1")
	s.Login("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodGet, "/api/admin/logs/login", nil, s.adminCookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	// At least the admin login and the user login.
	s.GreaterOrEqual(len(s.DataList(resp)), 2)
}

func (s *AdminSuite) TestPromoteRequiresSuperAdmin() {
	s.Signup("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/admin/admins", fiber.Map{
		"email": "ana@example.com",
	}, s.adminCookie)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)
}

func (s *AdminSuite) TestSuperAdminPromotesUser() {
	s.GrantRole("boss@example.com", "clavemuy8segura", domain.RoleSuperAdmin)
	superCookie := s.AdminLogin("boss@example.com", "clavemuy8segura")

	s.Signup("ana@example.com", "secreta1")
	resp := s.Request(fiber.MethodPost, "/api/admin/admins", fiber.Map{
		"email": "ana@example.com",
	}, superCookie)
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	s.Equal("admin", s.Data(resp)["role"])

	// The promoted user can now enter the admin realm.
	s.AdminLogin("ana@example.com", "secreta1")
}

func (s *AdminSuite) TestListAdmins() {
	s.GrantRole("boss@example.com", "clavemuy8segura", domain.RoleSuperAdmin)

	resp := s.Request(fiber.MethodGet, "/api/admin/admins", nil, s.adminCookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(s.DataList(resp), 2)
}
