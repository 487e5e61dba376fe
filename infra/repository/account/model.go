package account

import (
	"time"

	infracategory "github.com/pocketfin/pocketfin/infra/repository/category"
	infrauser "github.com/pocketfin/pocketfin/infra/repository/user"
	"github.com/shopspring/decimal"
)

// Account represents an account record. Money is a cached aggregate of the
// signed transaction amounts under the account's tags; the transaction
// lifecycle keeps it consistent.
type Account struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"not null;size:100"`
	Money      decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	UserID     uint            `gorm:"not null;index"`
	CategoryID uint            `gorm:"not null;index"`
	User       infrauser.User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Category   infracategory.Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Account) TableName() string {
	return "accounts"
}
