package infra

import (
	infraaccount "github.com/pocketfin/pocketfin/infra/repository/account"
	infracategory "github.com/pocketfin/pocketfin/infra/repository/category"
	infrachat "github.com/pocketfin/pocketfin/infra/repository/chat"
	infragoal "github.com/pocketfin/pocketfin/infra/repository/goal"
	infrasession "github.com/pocketfin/pocketfin/infra/repository/session"
	infratag "github.com/pocketfin/pocketfin/infra/repository/tag"
	infratransaction "github.com/pocketfin/pocketfin/infra/repository/transaction"
	infrauser "github.com/pocketfin/pocketfin/infra/repository/user"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the full relational schema. Order matters:
// referenced tables first.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&infrauser.Role{},
		&infrauser.User{},
		&infrasession.Session{},
		&infrasession.PasswordReset{},
		&infracategory.Category{},
		&infraaccount.Account{},
		&infratag.Tag{},
		&infratransaction.Transaction{},
		&infragoal.Goal{},
		&infragoal.GoalTarget{},
		&infrachat.Chat{},
		&infrachat.Message{},
	)
}
