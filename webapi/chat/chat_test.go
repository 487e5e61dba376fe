package chat_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type ChatSuite struct {
	testutils.AppSuite

	cookie    *http.Cookie
	accountID uint
	tagID     uint
}

func TestChatSuite(t *testing.T) {
	suite.Run(t, new(ChatSuite))
}

func (s *ChatSuite) SetupTest() {
	s.AppSuite.SetupTest()
	s.Signup("ana@example.com", "secreta1")
	s.cookie = s.Login("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/category", fiber.Map{
		"tipo": "corriente",
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	categoryID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodPost, "/api/account", fiber.Map{
		"name":       "Cuenta principal",
		"money":      "500",
		"categoryId": categoryID,
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	s.accountID = uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodPost, "/api/tag", fiber.Map{
		"name":      "comida",
		"accountId": s.accountID,
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	s.tagID = uint(s.Data(resp)["id"].(float64))
}

func (s *ChatSuite) ask(question string) *http.Response {
	return s.Request(fiber.MethodPost,
		fmt.Sprintf("/api/chat/%d", s.accountID),
		fiber.Map{"question": question}, s.cookie)
}

func (s *ChatSuite) TestAskReturnsAnswerAndPersists() {
	s.Completer.Answer = "Gastaste 30 en comida"

	resp := s.ask("¿Cuánto gasté en comida?")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	data := s.Data(resp)
	s.Equal("¿Cuánto gasté en comida?", data["question"])
	s.Equal("Gastaste 30 en comida", data["answer"])

	resp = s.Request(fiber.MethodGet,
		fmt.Sprintf("/api/chat/%d", s.accountID), nil, s.cookie)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	messages := s.Data(resp)["messages"].([]any)
	s.Require().Len(messages, 1)
	s.Equal("Gastaste 30 en comida", messages[0].(map[string]any)["answer"])
}

func (s *ChatSuite) TestContextCarriesFinancialSnapshot() {
	resp := s.Request(fiber.MethodPost, "/api/transaction", fiber.Map{
		"amount": "30", "isIncome": false, "tagId": s.tagID,
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	resp = s.ask("¿Cómo van mis finanzas?")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	s.Contains(s.Completer.SystemContext, "Cuenta principal")
	s.Contains(s.Completer.SystemContext, "corriente")
	s.Contains(s.Completer.SystemContext, "470")
	s.Contains(s.Completer.SystemContext, "comida")
	s.Contains(s.Completer.SystemContext, "30")
	s.Equal("¿Cómo van mis finanzas?", s.Completer.Question)
}

func (s *ChatSuite) TestForeignAccountNotFound() {
	s.Signup("otro@example.com", "secreta1")
	otherCookie := s.Login("otro@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost,
		fmt.Sprintf("/api/chat/%d", s.accountID),
		fiber.Map{"question": "hola"}, otherCookie)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *ChatSuite) TestCompleterFailureDoesNotPersist() {
	s.Completer.Err = errors.New("proveedor caído")

	resp := s.ask("¿hola?")
	s.Equal(fiber.StatusInternalServerError, resp.StatusCode)

	s.Completer.Err = nil
	resp = s.Request(fiber.MethodGet,
		fmt.Sprintf("/api/chat/%d", s.accountID), nil, s.cookie)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Empty(s.Data(resp)["messages"])
}

func (s *ChatSuite) TestHistoryIsOrdered() {
	s.Completer.Answer = "ok"
	s.Require().Equal(fiber.StatusOK, s.ask("primera").StatusCode)
	s.Require().Equal(fiber.StatusOK, s.ask("segunda").StatusCode)

	resp := s.Request(fiber.MethodGet,
		fmt.Sprintf("/api/chat/%d", s.accountID), nil, s.cookie)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	messages := s.Data(resp)["messages"].([]any)
	s.Require().Len(messages, 2)
	s.Equal("primera", messages[0].(map[string]any)["question"])
	s.Equal("segunda", messages[1].(map[string]any)["question"])
}
