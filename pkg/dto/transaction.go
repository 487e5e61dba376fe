package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCreate represents the data needed to record a transaction.
// Amount is always positive; IsIncome decides the sign of its effect on the
// owning account's balance.
type TransactionCreate struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	IsIncome    bool            `json:"isIncome"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty" validate:"max=255"`
	TagID       uint            `json:"tagId" validate:"required"`
}

// TransactionUpdate represents the fields that can be changed on a
// transaction. Nil fields keep the stored value.
type TransactionUpdate struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	IsIncome    *bool            `json:"isIncome,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=255"`
}

// TransactionRead is a read-optimized view of a transaction.
type TransactionRead struct {
	ID          uint            `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	IsIncome    bool            `json:"isIncome"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	TagID       uint            `json:"tagId"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
