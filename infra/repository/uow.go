// Package repository provides the GORM-backed unit of work binding every
// repository to one transaction.
package repository

import (
	"context"
	"fmt"
	"reflect"

	infraaccount "github.com/pocketfin/pocketfin/infra/repository/account"
	infracategory "github.com/pocketfin/pocketfin/infra/repository/category"
	infrachat "github.com/pocketfin/pocketfin/infra/repository/chat"
	infragoal "github.com/pocketfin/pocketfin/infra/repository/goal"
	infrasession "github.com/pocketfin/pocketfin/infra/repository/session"
	infratag "github.com/pocketfin/pocketfin/infra/repository/tag"
	infratransaction "github.com/pocketfin/pocketfin/infra/repository/transaction"
	infrauser "github.com/pocketfin/pocketfin/infra/repository/user"
	"github.com/pocketfin/pocketfin/pkg/repository"
	"github.com/pocketfin/pocketfin/pkg/repository/account"
	"github.com/pocketfin/pocketfin/pkg/repository/category"
	"github.com/pocketfin/pocketfin/pkg/repository/chat"
	"github.com/pocketfin/pocketfin/pkg/repository/goal"
	"github.com/pocketfin/pocketfin/pkg/repository/session"
	"github.com/pocketfin/pocketfin/pkg/repository/tag"
	"github.com/pocketfin/pocketfin/pkg/repository/transaction"
	"github.com/pocketfin/pocketfin/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Every repository handed out inside Do is bound to the same
// *gorm.DB transaction, so a ledger write and its balance write commit or
// roll back together.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a unit of work for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*user.Repository)(nil)).Elem():           func(db *gorm.DB) any { return infrauser.New(db) },
			reflect.TypeOf((*session.Repository)(nil)).Elem():        func(db *gorm.DB) any { return infrasession.New(db) },
			reflect.TypeOf((*session.ResetRepository)(nil)).Elem():   func(db *gorm.DB) any { return infrasession.NewReset(db) },
			reflect.TypeOf((*account.Repository)(nil)).Elem():        func(db *gorm.DB) any { return infraaccount.New(db) },
			reflect.TypeOf((*category.Repository)(nil)).Elem():       func(db *gorm.DB) any { return infracategory.New(db) },
			reflect.TypeOf((*tag.Repository)(nil)).Elem():            func(db *gorm.DB) any { return infratag.New(db) },
			reflect.TypeOf((*transaction.Repository)(nil)).Elem():    func(db *gorm.DB) any { return infratransaction.New(db) },
			reflect.TypeOf((*goal.Repository)(nil)).Elem():           func(db *gorm.DB) any { return infragoal.New(db) },
			reflect.TypeOf((*chat.Repository)(nil)).Elem():           func(db *gorm.DB) any { return infrachat.New(db) },
		},
	}
}

// Do runs fn in a transaction boundary, providing a UoW whose repositories
// share the transaction session.
func (u *UoW) Do(
	ctx context.Context,
	fn func(uow repository.UnitOfWork) error,
) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// GetRepository returns the repository registered for the given interface
// type, bound to the current transaction session. Call with a nil interface
// pointer: GetRepository((*user.Repository)(nil)).
func (u *UoW) GetRepository(repoType any) (any, error) {
	t := reflect.TypeOf(repoType)
	if t == nil || t.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("repoType must be a nil interface pointer, got %T", repoType)
	}
	constructor, ok := u.repoRegistry[t.Elem()]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", t.Elem())
	}
	db := u.tx
	if db == nil {
		db = u.db
	}
	return constructor(db), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
