package user

import (
	"time"
)

// Role is a lookup row for the closed privilege set. Rows are created lazily
// on first use.
type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null;size:20"`
}

func (Role) TableName() string {
	return "roles"
}

// User represents a user record in the database. Disabled marks an admin
// soft-delete; self-service account deletion removes the row outright.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	Password  string `gorm:"not null"`
	Nickname  string `gorm:"size:50"`
	RoleID    uint   `gorm:"not null;index"`
	Role      Role   `gorm:"foreignKey:RoleID"`
	Disabled  bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
