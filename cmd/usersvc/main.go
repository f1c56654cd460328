package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gvr1220/user-management/config"
	"github.com/gvr1220/user-management/internal/delivery"
	"github.com/gvr1220/user-management/internal/delivery/api"
	apimiddleware "github.com/gvr1220/user-management/internal/delivery/api/middleware"
	"github.com/gvr1220/user-management/internal/delivery/api/router/handler"
	"github.com/gvr1220/user-management/internal/domain/policy"
	"github.com/gvr1220/user-management/internal/infra/auth"
	logs "github.com/gvr1220/user-management/internal/infra/log"
	"github.com/gvr1220/user-management/internal/infra/nickname"
	"github.com/gvr1220/user-management/internal/infra/notification"
	"github.com/gvr1220/user-management/internal/infra/pubsub"
	"github.com/gvr1220/user-management/internal/usecase/impl"
	"github.com/gvr1220/user-management/internal/validator"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			validator.New,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			provideStore,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewPasswordHasher,
			auth.NewTokenGenerator,
			auth.NewJWTValidator,
			nickname.NewGenerator,
			notification.NewVerificationNotifier,
			policy.NewRolePolicy,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
			apimiddleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewUserHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
