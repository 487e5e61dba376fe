// Package app wires configuration, infrastructure dependencies, and services
// into one composition root.
package app

import (
	"log/slog"

	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/repository"
	"github.com/pocketfin/pocketfin/pkg/service/account"
	"github.com/pocketfin/pocketfin/pkg/service/admin"
	"github.com/pocketfin/pocketfin/pkg/service/auth"
	"github.com/pocketfin/pocketfin/pkg/service/category"
	"github.com/pocketfin/pocketfin/pkg/service/chat"
	"github.com/pocketfin/pocketfin/pkg/service/goal"
	"github.com/pocketfin/pocketfin/pkg/service/tag"
	"github.com/pocketfin/pocketfin/pkg/service/transaction"
	"github.com/pocketfin/pocketfin/pkg/service/user"
)

// Deps contains the infrastructure dependencies the services are built on.
type Deps struct {
	Uow       repository.UnitOfWork
	Completer chat.Completer
	Logger    *slog.Logger
}

// App aggregates every service behind one handle.
type App struct {
	Deps   *Deps
	Config *config.App

	AuthService        *auth.Service
	UserService        *user.Service
	AccountService     *account.Service
	CategoryService    *category.Service
	TagService         *tag.Service
	TransactionService *transaction.Service
	GoalService        *goal.Service
	ChatService        *chat.Service
	AdminService       *admin.Service
}

// New builds the full service graph.
func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:               deps,
		Config:             cfg,
		AuthService:        auth.New(deps.Uow, cfg.Jwt, deps.Logger),
		UserService:        user.New(deps.Uow, deps.Logger),
		AccountService:     account.New(deps.Uow, deps.Logger),
		CategoryService:    category.New(deps.Uow, deps.Logger),
		TagService:         tag.New(deps.Uow, deps.Logger),
		TransactionService: transaction.New(deps.Uow, deps.Logger),
		GoalService:        goal.New(deps.Uow, deps.Logger),
		ChatService:        chat.New(deps.Uow, deps.Completer, deps.Logger),
		AdminService:       admin.New(deps.Uow, deps.Logger),
	}
}
