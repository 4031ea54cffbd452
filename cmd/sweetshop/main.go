package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sweetshop/config"
	"sweetshop/internal/delivery/cli"
	"sweetshop/internal/domain/service"
	"sweetshop/internal/infra/api"
	"sweetshop/internal/infra/auth"
	logs "sweetshop/internal/infra/log"
	"sweetshop/internal/infra/session"
	"sweetshop/internal/usecase/impl"

	"go.uber.org/fx"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		cliApp *cli.App
		store  *session.Store
	)

	app := fx.New(
		fx.NopLogger,
		injectInfra(),
		injectGateway(),
		injectUsecase(),
		fx.Provide(cli.NewApp),
		fx.Populate(&cliApp, &store),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close session store", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cliApp.Run(ctx, os.Args[1:]); err != nil {
		cliApp.ReportError(err)

		return 1
	}

	return 0
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		session.NewStore,
		session.AsSession,
		auth.NewJWTInspector,
		newAPIClient,
	)
}

// newAPIClient builds the shared HTTP client. The auth-failure hook
// tells the user their session died mid-command; the command's error
// still surfaces through the normal path.
func newAPIClient(cfg *config.Config, sess service.Session, logger *slog.Logger) (*api.Client, error) {
	return api.NewClient(cfg, sess, logger, api.WithAuthFailureHandler(func() {
		fmt.Fprintln(os.Stderr, "Your session has expired. Please run 'sweetshop login' again.")
	}))
}

func injectGateway() fx.Option {
	return fx.Options(
		fx.Provide(
			api.NewAuthGateway,
			api.NewCatalogGateway,
			api.NewCartGateway,
			api.NewOrderGateway,
			api.NewAdminGateway,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewCatalogService,
			impl.NewCartStore,
			impl.NewOrderService,
			impl.NewAdminService,
		),
	)
}
