package tag

import (
	"time"

	infraaccount "github.com/pocketfin/pocketfin/infra/repository/account"
)

// Tag is a named sub-bucket of an account that scopes transactions.
type Tag struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null;size:100"`
	Description string `gorm:"size:255"`
	AccountID   uint   `gorm:"not null;index"`
	Account     infraaccount.Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Tag) TableName() string {
	return "tags"
}
