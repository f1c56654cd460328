package main

import (
	"log/slog"

	"github.com/gvr1220/user-management/config"
	"github.com/gvr1220/user-management/internal/domain/constants"
	"github.com/gvr1220/user-management/internal/domain/repository"
	"github.com/gvr1220/user-management/internal/infra/persistence/memory"
	"github.com/gvr1220/user-management/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type storeParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type storeResult struct {
	fx.Out

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
}

// provideStore selects the user store named by database.driver.
func provideStore(params storeParams) (storeResult, error) {
	driver := constants.DatabaseDriverPostgres
	if params.Config.Database != nil && params.Config.Database.Driver != "" {
		driver = params.Config.Database.Driver
	}

	switch driver {
	case constants.DatabaseDriverMemory:
		params.Logger.Warn("Using in-memory user store, data is lost on restart")
		store := memory.NewStore()

		return storeResult{
			TxManager: memory.NewTransactionManager(store),
			UserRepo:  memory.NewUserRepository(store),
		}, nil

	case constants.DatabaseDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return storeResult{}, err
		}

		return storeResult{
			TxManager: postgres.NewTransactionManager(db),
			UserRepo:  postgres.NewUserRepository(db),
		}, nil

	default:
		return storeResult{}, errors.Errorf("unknown database driver: %s", driver)
	}
}
