package goal_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketfin/pocketfin/webapi/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type GoalSuite struct {
	testutils.AppSuite

	cookie    *http.Cookie
	accountID uint
	tagID     uint
}

func TestGoalSuite(t *testing.T) {
	suite.Run(t, new(GoalSuite))
}

func (s *GoalSuite) SetupTest() {
	s.AppSuite.SetupTest()
	s.Signup("ana@example.com", "secreta1")
	s.cookie = s.Login("ana@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/category", fiber.Map{
		"tipo": "ahorro",
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	categoryID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodPost, "/api/account", fiber.Map{
		"name":       "Cuenta de ahorro",
		"money":      "200",
		"categoryId": categoryID,
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	s.accountID = uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodPost, "/api/tag", fiber.Map{
		"name":      "vacaciones",
		"accountId": s.accountID,
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	s.tagID = uint(s.Data(resp)["id"].(float64))
}

func (s *GoalSuite) goalBody(targets []fiber.Map) fiber.Map {
	return fiber.Map{
		"description": "Viaje a la playa",
		"startDate":   time.Now().Format(time.RFC3339),
		"endDate":     time.Now().AddDate(0, 6, 0).Format(time.RFC3339),
		"maxMoney":    "1000",
		"targets":     targets,
	}
}

func (s *GoalSuite) TestCreateRequiresTargets() {
	resp := s.Request(fiber.MethodPost, "/api/goal",
		s.goalBody([]fiber.Map{}), s.cookie)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *GoalSuite) TestTargetsRoundTrip() {
	resp := s.Request(fiber.MethodPost, "/api/goal", s.goalBody([]fiber.Map{
		{"targetType": "account", "targetId": s.accountID},
		{"targetType": "tag", "targetId": s.tagID},
	}), s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	goalID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodGet, fmt.Sprintf("/api/goal/%d", goalID), nil, s.cookie)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	targets := s.Data(resp)["targets"].([]any)
	s.Require().Len(targets, 2)

	kinds := map[string]bool{}
	for _, t := range targets {
		target := t.(map[string]any)
		kinds[target["targetType"].(string)] = true
	}
	s.True(kinds["account"])
	s.True(kinds["tag"])
}

func (s *GoalSuite) TestInvalidTargetTypeRejected() {
	resp := s.Request(fiber.MethodPost, "/api/goal", s.goalBody([]fiber.Map{
		{"targetType": "wallet", "targetId": s.accountID},
	}), s.cookie)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *GoalSuite) TestForeignTargetRejected() {
	s.Signup("otro@example.com", "secreta1")
	otherCookie := s.Login("otro@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/goal", s.goalBody([]fiber.Map{
		{"targetType": "account", "targetId": s.accountID},
	}), otherCookie)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *GoalSuite) TestProgressCombinesAccountAndTag() {
	// Pocket history: +80 income, -30 expense => tag sum 50, balance 250.
	resp := s.Request(fiber.MethodPost, "/api/transaction", fiber.Map{
		"amount": "80", "isIncome": true, "tagId": s.tagID,
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	resp = s.Request(fiber.MethodPost, "/api/transaction", fiber.Map{
		"amount": "30", "isIncome": false, "tagId": s.tagID,
	}, s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	resp = s.Request(fiber.MethodPost, "/api/goal", s.goalBody([]fiber.Map{
		{"targetType": "account", "targetId": s.accountID},
		{"targetType": "tag", "targetId": s.tagID},
	}), s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	goalID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(
		fiber.MethodGet, fmt.Sprintf("/api/goal/%d/progress", goalID), nil, s.cookie)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	progress := s.Data(resp)["actualProgress"]
	got, err := decimal.NewFromString(fmt.Sprintf("%v", progress))
	s.Require().NoError(err)
	// 250 (account balance) + 50 (tag signed sum) = 300
	s.True(got.Equal(decimal.RequireFromString("300")),
		"expected progress 300, got %s", got)
}

func (s *GoalSuite) TestUpdateReplacesTargets() {
	resp := s.Request(fiber.MethodPost, "/api/goal", s.goalBody([]fiber.Map{
		{"targetType": "account", "targetId": s.accountID},
		{"targetType": "tag", "targetId": s.tagID},
	}), s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	goalID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodPut, fmt.Sprintf("/api/goal/%d", goalID), fiber.Map{
		"targets": []fiber.Map{
			{"targetType": "tag", "targetId": s.tagID},
		},
	}, s.cookie)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	targets := s.Data(resp)["targets"].([]any)
	s.Require().Len(targets, 1)
	s.Equal("tag", targets[0].(map[string]any)["targetType"])
}

func (s *GoalSuite) TestUpdateWithoutTargetsKeepsThem() {
	resp := s.Request(fiber.MethodPost, "/api/goal", s.goalBody([]fiber.Map{
		{"targetType": "account", "targetId": s.accountID},
	}), s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	goalID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodPut, fmt.Sprintf("/api/goal/%d", goalID), fiber.Map{
		"description": "Viaje a la montaña",
	}, s.cookie)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("Viaje a la montaña", s.Data(resp)["description"])
	s.Len(s.Data(resp)["targets"].([]any), 1)
}

func (s *GoalSuite) TestDeleteGoal() {
	resp := s.Request(fiber.MethodPost, "/api/goal", s.goalBody([]fiber.Map{
		{"targetType": "tag", "targetId": s.tagID},
	}), s.cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	goalID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodDelete, fmt.Sprintf("/api/goal/%d", goalID), nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.Request(fiber.MethodGet, fmt.Sprintf("/api/goal/%d", goalID), nil, s.cookie)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}
