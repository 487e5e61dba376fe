package transaction_test

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

type TransactionSuite struct {
	testutils.AppSuite

	cookie    *http.Cookie
	userID    uint
	accountID uint
	tagID     uint
}

func TestTransactionSuite(t *testing.T) {
	suite.Run(t, new(TransactionSuite))
}

func (s *TransactionSuite) SetupTest() {
	s.AppSuite.SetupTest()
	s.userID = s.Signup("ana@example.com", "secreta1")
	s.cookie = s.Login("ana@example.com", "secreta1")
	s.accountID, s.tagID = s.newLedger(s.cookie, "100")
}

// newLedger creates a category, an account with the given opening balance,
// and a tag pocket, returning the account and tag ids.
func (s *TransactionSuite) newLedger(cookie *http.Cookie, money string) (uint, uint) {
	resp := s.Request(fiber.MethodPost, "/api/category", fiber.Map{
		"tipo": "ahorro",
	}, cookie)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	categoryID := uint(s.Data(resp)["id"].(float64))

	resp = s.Request(fiber.MethodPost, "/api/account", fiber.Map{
		"name":       "Cuenta principal",
		"money":      money,
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
	return accountID, tagID
}

func (s *TransactionSuite) balance() decimal.Decimal {
	resp := s.Request(
		fiber.MethodGet, fmt.Sprintf("/api/account/%d", s.userID), nil, s.cookie)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	for _, item := range s.DataList(resp) {
		account := item.(map[string]any)
		if uint(account["id"].(float64)) == s.accountID {
			return s.toDecimal(account["money"])
		}
	}
	s.FailNow("account not found in listing")
	return decimal.Zero
}

func (s *TransactionSuite) toDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case string:
		d, err := decimal.NewFromString(val)
		s.Require().NoError(err)
		return d
	case float64:
		return decimal.NewFromFloat(val)
	default:
		s.FailNow(fmt.Sprintf("unexpected money type %T", v))
		return decimal.Zero
	}
}

func (s *TransactionSuite) createTx(amount string, isIncome bool) (uint, *http.Response) {
	resp := s.Request(fiber.MethodPost, "/api/transaction", fiber.Map{
		"amount":   amount,
		"isIncome": isIncome,
		"tagId":    s.tagID,
		"date":     time.Now().Format(time.RFC3339),
	}, s.cookie)
	if resp.StatusCode != fiber.StatusCreated {
		return 0, resp
	}
	return uint(s.Data(resp)["id"].(float64)), resp
}

func (s *TransactionSuite) assertBalance(expected string) {
	s.True(s.balance().Equal(decimal.RequireFromString(expected)),
		"expected balance %s, got %s", expected, s.balance())
}

func (s *TransactionSuite) TestIncomeAndExpenseMoveBalance() {
	_, resp := s.createTx("50", true)
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	s.assertBalance("150")

	_, resp = s.createTx("30", false)
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	s.assertBalance("120")
}

func (s *TransactionSuite) TestExpenseOverBalanceRejectedAtomically() {
	_, resp := s.createTx("200", false)
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	s.Equal("Saldo insuficiente", s.DecodeBody(resp)["title"])

	// Nothing persisted: balance and ledger are untouched.
	s.assertBalance("100")
	listResp := s.Request(
		fiber.MethodGet, fmt.Sprintf("/api/transaction/tag/%d", s.tagID), nil, s.cookie)
	s.Equal(fiber.StatusOK, listResp.StatusCode)
	s.Empty(s.DataList(listResp))
}

func (s *TransactionSuite) TestUpdateReversesOldEffect() {
	id, resp := s.createTx("50", true)
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	s.assertBalance("150")

	isIncome := false
	resp = s.Request(fiber.MethodPut, fmt.Sprintf("/api/transaction/%d", id), fiber.Map{
		"amount":   "20",
		"isIncome": isIncome,
	}, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	// 150 - 50 (reverse income) - 20 (new expense) = 80
	s.assertBalance("80")
}

func (s *TransactionSuite) TestUpdateKeepsBalanceOnGuardFailure() {
	id, resp := s.createTx("60", false)
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	s.assertBalance("40")

	resp = s.Request(fiber.MethodPut, fmt.Sprintf("/api/transaction/%d", id), fiber.Map{
		"amount": "150",
	}, s.cookie)
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	s.assertBalance("40")

	// The stored amount is unchanged.
	resp = s.Request(fiber.MethodGet, fmt.Sprintf("/api/transaction/%d", id), nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.True(s.toDecimal(s.Data(resp)["amount"]).Equal(decimal.RequireFromString("60")))
}

func (s *TransactionSuite) TestDeleteReversesEffect() {
	id, resp := s.createTx("30", false)
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	s.assertBalance("70")

	resp = s.Request(fiber.MethodDelete, fmt.Sprintf("/api/transaction/%d", id), nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.assertBalance("100")
}

func (s *TransactionSuite) TestDeleteIncomeGuard() {
	incomeID, resp := s.createTx("50", true)
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	_, resp = s.createTx("120", false)
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	s.assertBalance("30")

	// Reversing the income would leave 30 - 50 = -20.
	resp = s.Request(
		fiber.MethodDelete, fmt.Sprintf("/api/transaction/%d", incomeID), nil, s.cookie)
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	s.assertBalance("30")
}

func (s *TransactionSuite) TestZeroAmountRejected() {
	_, resp := s.createTx("0", true)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *TransactionSuite) TestForeignTagReadsAsNotFound() {
	s.Signup("otro@example.com", "secreta1")
	otherCookie := s.Login("otro@example.com", "secreta1")

	resp := s.Request(fiber.MethodPost, "/api/transaction", fiber.Map{
		"amount":   "10",
		"isIncome": true,
		"tagId":    s.tagID,
	}, otherCookie)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *TransactionSuite) TestListByDate() {
	_, resp := s.createTx("50", true)
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	_, resp = s.createTx("20", false)
	s.Equal(fiber.StatusCreated, resp.StatusCode)

	today := time.Now().Format("2006-01-02")
	resp = s.Request(fiber.MethodGet,
		fmt.Sprintf("/api/transaction/byDate?from=%s&to=%s", today, today),
		nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(s.DataList(resp), 2)

	// Outside the range nothing matches.
	resp = s.Request(fiber.MethodGet,
		"/api/transaction/byDate?from=2001-01-01&to=2001-12-31", nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Empty(s.DataList(resp))
}

func (s *TransactionSuite) TestListByTypeAndDate() {
	_, resp := s.createTx("50", true)
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	_, resp = s.createTx("20", false)
	s.Equal(fiber.StatusCreated, resp.StatusCode)

	today := time.Now().Format("2006-01-02")
	resp = s.Request(fiber.MethodGet,
		fmt.Sprintf("/api/transaction/byTypeDate?isIncome=true&from=%s&to=%s", today, today),
		nil, s.cookie)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	list := s.DataList(resp)
	s.Require().Len(list, 1)
	s.True(list[0].(map[string]any)["isIncome"].(bool))
}

func (s *TransactionSuite) TestInvalidDateRange() {
	resp := s.Request(fiber.MethodGet,
		"/api/transaction/byDate?from=ayer&to=hoy", nil, s.cookie)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}
