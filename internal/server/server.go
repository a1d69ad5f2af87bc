// Package server defines the application container.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service
//   - Firebase app and Firestore client
//   - blob store
//   - identity verifier
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/portfolio-api/internal/config"
	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/lib/identity"
	"github.com/deppfellow/portfolio-api/internal/storage"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/portfolio-api/internal/logger"
)

// Server holds the shared resources handed to every layer.
//
// DB may be nil in tests that inject in-memory repositories; Blobs and
// Verifier are interfaces so tests can supply fakes.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Blobs         storage.BlobStore
	Verifier      identity.Verifier

	httpServer *http.Server
}

// New connects to every external dependency and fails on the first one that
// is unreachable.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(ctx, &cfg.Firebase, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	authClient, err := db.App.Auth(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize identity verifier: %w", err)
	}

	blobCtx, cancel := context.WithTimeout(ctx, database.PingTimeout)
	defer cancel()

	blobs, err := storage.NewAzureBlobStore(blobCtx, &cfg.Storage, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize blob storage: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Blobs:         blobs,
		Verifier:      identity.NewFirebaseVerifier(authClient, cfg.Auth.AdminClaim),
	}, nil
}

// SetupHTTPServer configures the net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start serves HTTP until Shutdown. It returns http.ErrServerClosed after a
// graceful shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, then closes Firestore and flushes
// New Relic.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	s.LoggerService.Shutdown()

	return nil
}
