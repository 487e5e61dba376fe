package tag_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type TagSuite struct {
	testutils.AppSuite

	cookie    *http.Cookie
	accountID uint
}

func TestTagSuite(t *testing.T) {
	suite.Run(t, new(TagSuite))
}

func (s *TagSuite) SetupTest() {
	s.AppSuite.SetupTest()
	s.Signup("ana@example.com", "secreta1")
	s.cookie = s.Login("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/category", fiber.Map{
		"tipo": "corriente",
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	categoryID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodPost, "/api/account", fiber.Map{
		"name":       "Cuenta",
		"categoryId": categoryID,
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	s.accountID = uint(s.Data(resp)["id"].(float64))
}

func (s *TagSuite) createTag(name string) uint {
	resp := s.Request(fiber.MethodPost, "/api/tag", fiber.Map{
		"name":      name,
		"accountId": s.accountID,
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	return uint(s.Data(resp)["id"].(float64))
}

func (s *TagSuite) TestCreateAndListByAccount() {
	s.createTag("comida")
	s.createTag("transporte")

	resp := s.Request(fiber.MethodGet,
		fmt.Sprintf("/api/tag/account/%d", s.accountID), nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(s.DataList(resp), 2)
}

func (s *TagSuite) TestCreateOnForeignAccountNotFound() {
	s.Signup("otro@example.com", "secreta1")
	otherCookie := s.Login("otro@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/tag", fiber.Map{
		"name":      "intruso",
		"accountId": s.accountID,
	}, otherCookie)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *TagSuite) TestUpdate() {
	id := s.createTag("comida")

	resp := s.Request(fiber.MethodPut, fmt.Sprintf("/api/tag/%d", id), fiber.Map{
		"description": "gastos de supermercado",
	}, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	data := s.Data(resp)
	s.Equal("comida", data["name"])
	s.Equal("gastos de supermercado", data["description"])
}

func (s *TagSuite) TestDelete() {
	id := s.createTag("temporal")

	resp := s.Request(fiber.MethodDelete, fmt.Sprintf("/api/tag/%d", id), nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.Request(fiber.MethodGet, fmt.Sprintf("/api/tag/%d", id), nil, s.cookie)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *TagSuite) TestForeignTagReadsAsNotFound() {
	id := s.createTag("comida")
	s.Signup("otro@example.com", "secreta1")
	otherCookie := s.Login("otro@example.com", "secreta1")

	resp := s.Request(fiber.MethodGet, fmt.Sprintf("/api/tag/%d", id), nil, otherCookie)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}
