package goal

import (
	"time"

	infrauser "github.com/pocketfin/pocketfin/infra/repository/user"
	"github.com/shopspring/decimal"
)

// Goal is a savings goal over a date range. ActualProgress is recomputed on
// demand from the targeted account balances and tag sums.
type Goal struct {
	ID             uint            `gorm:"primaryKey"`
	Description    string          `gorm:"not null;size:255"`
	StartDate      time.Time       `gorm:"not null"`
	EndDate        time.Time       `gorm:"not null"`
	MaxMoney       decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	ActualProgress decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	UserID         uint            `gorm:"not null;index"`
	User           infrauser.User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Targets        []GoalTarget    `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Goal) TableName() string {
	return "goals"
}

// GoalTarget points a goal at either an account or a tag pocket.
type GoalTarget struct {
	ID         uint   `gorm:"primaryKey"`
	GoalID     uint   `gorm:"not null;index"`
	TargetType string `gorm:"not null;size:10"`
	TargetID   uint   `gorm:"not null"`
}

func (GoalTarget) TableName() string {
	return "goal_targets"
}
