// Command hello-world serves the request-handling example catalog.
//
// Startup: config → logger (+ optional New Relic) → server container →
// repositories → services → handlers → router → listen. SIGINT/SIGTERM
// trigger a graceful shutdown bounded by shutdownTimeout.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/link2cory/echo-hello-world/internal/config"
	"github.com/link2cory/echo-hello-world/internal/handler"
	"github.com/link2cory/echo-hello-world/internal/logger"
	"github.com/link2cory/echo-hello-world/internal/repository"
	"github.com/link2cory/echo-hello-world/internal/router"
	"github.com/link2cory/echo-hello-world/internal/server"
	"github.com/link2cory/echo-hello-world/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(&cfg.Observability)
	log := logger.NewLoggerWithService(&cfg.Observability, loggerService)

	if err := run(cfg, &log, loggerService); err != nil {
		log.Fatal().Stack().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) error {
	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return errors.Wrap(err, "failed to initialize server")
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewServices(srv, repos)
	if err != nil {
		return errors.Wrap(err, "failed to create services")
	}

	handlers := handler.NewHandlers(srv, services)

	r, err := router.NewRouter(srv, handlers)
	if err != nil {
		return errors.Wrap(err, "failed to build router")
	}

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return errors.Wrap(err, "failed to start server")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped gracefully")
	return nil
}
