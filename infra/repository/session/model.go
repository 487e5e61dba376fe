package session

import (
	"time"

	infrauser "github.com/pocketfin/pocketfin/infra/repository/user"
)

// Session represents one device's login. Unique on (user, device); repeated
// logins from the same device refresh the row instead of adding one.
type Session struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"not null;uniqueIndex:idx_sessions_user_device"`
	DeviceID     string `gorm:"not null;size:100;uniqueIndex:idx_sessions_user_device"`
	RefreshToken string `gorm:"not null"`
	UserAgent    string `gorm:"size:255"`
	IP           string `gorm:"size:45"`
	ExpiresAt    time.Time
	Revoked      bool           `gorm:"not null;default:false"`
	User         infrauser.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Session) TableName() string {
	return "user_sessions"
}

// PasswordReset is a one-shot reset window for a user.
type PasswordReset struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"uniqueIndex;not null;size:64"`
	UserID    uint   `gorm:"not null;index"`
	ExpiresAt time.Time
	Used      bool           `gorm:"not null;default:false"`
	User      infrauser.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (PasswordReset) TableName() string {
	return "password_resets"
}
