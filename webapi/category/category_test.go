package category_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type CategorySuite struct {
	testutils.AppSuite

	cookie *http.Cookie
}

func TestCategorySuite(t *testing.T) {
	suite.Run(t, new(CategorySuite))
}

func (s *CategorySuite) SetupTest() {
	s.AppSuite.SetupTest()
	s.Signup("ana@example.com", "secreta1")
	s.cookie = s.Login("ana@example.com", "secreta1")
}

func (s *CategorySuite) TestCrud() {
	resp := s.Request(fiber.MethodPost, "/api/category", fiber.Map{
		"tipo": "ahorro",
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	id := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodGet, "/api/category", nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(s.DataList(resp), 1)

	resp = s.Request(fiber.MethodPut, fmt.Sprintf("/api/category/%d", id), fiber.Map{
		"tipo": "inversión",
	}, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("inversión", s.Data(resp)["tipo"])

	resp = s.Request(fiber.MethodDelete, fmt.Sprintf("/api/category/%d", id), nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.Request(fiber.MethodGet, fmt.Sprintf("/api/category/%d", id), nil, s.cookie)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *CategorySuite) TestUnknownCategoryNotFound() {
	resp := s.Request(fiber.MethodGet, "/api/category/9999", nil, s.cookie)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *CategorySuite) TestRequiresAuth() {
	resp := s.Request(fiber.MethodGet, "/api/category", nil)
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}
