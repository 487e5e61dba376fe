// Package session defines the persistence contract for login sessions and
// password-reset records.
package session

import (
	"context"

	"github.com/pocketfin/pocketfin/pkg/dto"
)

// Repository is the persistence contract for device login sessions. Sessions
// are unique on (user, device) and double as the admin login log.
type Repository interface {
	Upsert(ctx context.Context, upsert *dto.SessionUpsert) error
	Revoke(ctx context.Context, userID uint, deviceID string) error
	List(ctx context.Context, page, pageSize int) ([]*dto.SessionRead, error)
}

// ResetRepository is the persistence contract for password-reset tokens.
type ResetRepository interface {
	Create(ctx context.Context, create *dto.PasswordResetCreate) error
	// GetByToken returns (nil, nil) when the token is unknown.
	GetByToken(ctx context.Context, token string) (*dto.PasswordResetRead, error)
	MarkUsed(ctx context.Context, id uint) error
}
