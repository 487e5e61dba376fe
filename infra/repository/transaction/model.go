package transaction

import (
	"time"

	infratag "github.com/pocketfin/pocketfin/infra/repository/tag"
	"github.com/shopspring/decimal"
)

// Transaction is the authoritative ledger entry. Amount is always positive;
// IsIncome carries the sign of its effect on the owning account.
type Transaction struct {
	ID          uint            `gorm:"primaryKey"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	IsIncome    bool            `gorm:"not null"`
	Date        time.Time       `gorm:"not null;index"`
	Description string          `gorm:"size:255"`
	TagID       uint            `gorm:"not null;index"`
	Tag         infratag.Tag    `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Transaction) TableName() string {
	return "transactions"
}
