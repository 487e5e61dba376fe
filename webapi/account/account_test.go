package account_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type AccountSuite struct {
	testutils.AppSuite

	cookie     *http.Cookie
	userID     uint
	categoryID uint
}

func TestAccountSuite(t *testing.T) {
	suite.Run(t, new(AccountSuite))
}

func (s *AccountSuite) SetupTest() {
	s.AppSuite.SetupTest()
	s.userID = s.Signup("ana@example.com", "secreta1")
	s.cookie = s.Login("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/category", fiber.Map{
		"tipo": "corriente",
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	s.categoryID = uint(s.Data(resp)["id"].(float64))
}

func (s *AccountSuite) createAccount(name string) uint {
	resp := s.Request(fiber.MethodPost, "/api/account", fiber.Map{
		"name":       name,
		"money":      "100",
		"categoryId": s.categoryID,
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	return uint(s.Data(resp)["id"].(float64))
}

func (s *AccountSuite) TestCreateAndList() {
	s.createAccount("Nómina")
	s.createAccount("Ahorro")

	resp := s.Request(
		fiber.MethodGet, fmt.Sprintf("/api/account/%d", s.userID), nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(s.DataList(resp), 2)
}

func (s *AccountSuite) TestCreateWithUnknownCategory() {
	resp := s.Request(fiber.MethodPost, "/api/account", fiber.Map{
		"name":       "Huérfana",
		"categoryId": 9999,
	}, s.cookie)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *AccountSuite) TestListingForeignUserForbidden() {
	otherID := s.Signup("otro@example.com", "secreta1")

	resp := s.Request(
		fiber.MethodGet, fmt.Sprintf("/api/account/%d", otherID), nil, s.cookie)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)
}

func (s *AccountSuite) TestPartialUpdate() {
	id := s.createAccount("Nómina")

	resp := s.Request(fiber.MethodPut, fmt.Sprintf("/api/account/%d", id), fiber.Map{
		"name": "Nómina 2024",
	}, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	data := s.Data(resp)
	s.Equal("Nómina 2024", data["name"])
	// Untouched fields survive the partial update.
	s.Equal(float64(s.categoryID), data["categoryId"])
}

func (s *AccountSuite) TestUpdateForeignAccountNotFound() {
	id := s.createAccount("Nómina")
	s.Signup("otro@example.com", "secreta1")
	otherCookie := s.Login("otro@example.com", "secreta1")

	resp := s.Request(fiber.MethodPut, fmt.Sprintf("/api/account/%d", id), fiber.Map{
		"name": "Robada",
	}, otherCookie)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *AccountSuite) TestDelete() {
	id := s.createAccount("Temporal")

	resp := s.Request(fiber.MethodDelete, fmt.Sprintf("/api/account/%d", id), nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.Request(
		fiber.MethodGet, fmt.Sprintf("/api/account/%d", s.userID), nil, s.cookie)
	s.Empty(s.DataList(resp))
}

func (s *AccountSuite) TestRequiresAuth() {
	resp := s.Request(fiber.MethodPost, "/api/account", fiber.Map{
		"name":       "Anónima",
		"categoryId": s.categoryID,
	})
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}
