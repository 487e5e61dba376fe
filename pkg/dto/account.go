package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountCreate represents the data needed to create an account.
type AccountCreate struct {
	Name       string          `json:"name" validate:"required,max=100"`
	Money      decimal.Decimal `json:"money"`
	UserID     uint            `json:"-"`
	CategoryID uint            `json:"categoryId" validate:"required"`
}

// AccountUpdate represents the fields that can be changed on an account.
// Direct money edits bypass the balance invariant on purpose; only the
// transaction lifecycle guards it.
type AccountUpdate struct {
	Name       *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Money      *decimal.Decimal `json:"money,omitempty"`
	CategoryID *uint            `json:"categoryId,omitempty"`
}

// AccountRead is a read-optimized view of an account.
type AccountRead struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Money      decimal.Decimal `json:"money"`
	UserID     uint            `json:"userId"`
	CategoryID uint            `json:"categoryId"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
