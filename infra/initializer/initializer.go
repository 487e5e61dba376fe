// Package initializer builds the infrastructure dependency graph: logger,
// database, unit of work, and the completion-API client.
package initializer

import (
	"context"
	"errors"
	"fmt"

	"github.com/pocketfin/pocketfin/infra"
	"github.com/pocketfin/pocketfin/infra/ai"
	infrarepository "github.com/pocketfin/pocketfin/infra/repository"
	"github.com/pocketfin/pocketfin/pkg/app"
	"github.com/pocketfin/pocketfin/pkg/config"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	deps := &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	deps.Uow = infrarepository.NewUoW(db)

	if cfg.AI.ApiKey != "" {
		client, err := ai.New(cfg.AI)
		if err != nil {
			return nil, fmt.Errorf("failed to build completion client: %w", err)
		}
		deps.Completer = client
	} else {
		logger.Warn("AI_API_KEY not set; chat assistant disabled")
		deps.Completer = unavailableCompleter{}
	}
	return deps, nil
}

// unavailableCompleter stands in when no completion API is configured. The
// rest of the API keeps working; only chat questions fail.
type unavailableCompleter struct{}

func (unavailableCompleter) Complete(context.Context, string, string) (string, error) {
	return "", errors.New("completion API is not configured")
}
