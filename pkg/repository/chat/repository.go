// Package chat defines the persistence contract for account chat threads.
package chat

import (
	"context"

	"github.com/pocketfin/pocketfin/pkg/dto"
)

// Repository is the persistence contract for the single chat thread each
// account owns and its ordered messages.
type Repository interface {
	// GetOrCreateByAccount returns the account's chat, creating the row on
	// first use. Messages come back in insertion order.
	GetOrCreateByAccount(ctx context.Context, accountID uint) (*dto.ChatRead, error)
	AddMessage(ctx context.Context, create *dto.MessageCreate) (*dto.MessageRead, error)
}
