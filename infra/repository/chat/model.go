package chat

import (
	"time"

	infraaccount "github.com/pocketfin/pocketfin/infra/repository/account"
)

// Chat is the single assistant thread an account owns.
type Chat struct {
	ID        uint `gorm:"primaryKey"`
	AccountID uint `gorm:"not null;uniqueIndex"`
	Account   infraaccount.Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Messages  []Message            `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Chat) TableName() string {
	return "chats"
}

// Message records one question and the assistant's answer.
type Message struct {
	ID        uint   `gorm:"primaryKey"`
	ChatID    uint   `gorm:"not null;index"`
	Question  string `gorm:"type:text;not null"`
	Answer    string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (Message) TableName() string {
	return "messages"
}
