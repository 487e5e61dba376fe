package dto

import "time"

// SessionUpsert carries one device login. Sessions are unique per
// (user, device); a repeated login from the same device refreshes the row.
type SessionUpsert struct {
	UserID       uint
	DeviceID     string
	RefreshToken string
	UserAgent    string
	IP           string
	ExpiresAt    time.Time
}

// SessionRead is a read-optimized view of a login session, doubling as the
// admin login log entry.
type SessionRead struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	DeviceID  string    `json:"device_id"`
	UserAgent string    `json:"user_agent,omitempty"`
	IP        string    `json:"ip,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PasswordResetCreate opens a reset window for a user.
type PasswordResetCreate struct {
	Token     string
	UserID    uint
	ExpiresAt time.Time
}

// PasswordResetRead is a read-optimized view of a reset record.
type PasswordResetRead struct {
	ID        uint
	Token     string
	UserID    uint
	ExpiresAt time.Time
	Used      bool
}
