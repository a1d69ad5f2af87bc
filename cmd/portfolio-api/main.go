package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/portfolio-api/internal/config"
	"github.com/deppfellow/portfolio-api/internal/handler"
	"github.com/deppfellow/portfolio-api/internal/lib/email"
	"github.com/deppfellow/portfolio-api/internal/logger"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/router"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		panic("failed to initialize New Relic: " + err.Error())
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if err := run(cfg, &log, loggerService); err != nil {
		log.Error().Err(err).Msg("server exited")
		loggerService.Shutdown()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	srv, err := server.New(startCtx, cfg, log, loggerService)
	cancel()
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(srv.DB.Client)
	services := service.NewServices(srv, repos, email.NewClient(&cfg.Email, log))
	handlers := handler.NewHandlers(srv, services)

	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

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
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop accepting requests before draining acknowledgement emails.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := services.Form.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("pending notifications abandoned")
	}

	log.Info().Msg("server stopped")
	return nil
}
