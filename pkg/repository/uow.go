// Package repository defines the persistence contracts consumed by services.
// Implementations live under infra/repository.
package repository

import "context"

// UnitOfWork provides a transaction boundary and repository access in one
// abstraction. Every repository obtained inside Do shares the same database
// transaction, so a balance write and its ledger write commit or roll back
// together.
type UnitOfWork interface {
	// Do runs fn inside a transaction. The UnitOfWork passed to fn hands out
	// repositories bound to that transaction.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	// GetRepository returns the repository registered for the given interface
	// type. Call with a nil interface pointer: GetRepository((*user.Repository)(nil)).
	GetRepository(repoType any) (any, error)
}
