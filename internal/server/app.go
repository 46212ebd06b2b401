// Package server initializes and runs the devconnector API server.
// It selects the storage backend, applies migrations, wires the services
// and serves HTTP until a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/devconnector/internal/logging"
	"github.com/dmitrijs2005/devconnector/internal/server/auth"
	"github.com/dmitrijs2005/devconnector/internal/server/config"
	"github.com/dmitrijs2005/devconnector/internal/server/httpapi"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/devconnector/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	verifier    *auth.Verifier
	services    httpapi.Services
}

// openRepositoryManager picks Postgres when a DSN is configured and the
// in-memory store otherwise.
var openRepositoryManager = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	if dsn == "" {
		return repomanager.NewMemoryRepositoryManager(), nil
	}
	return repomanager.OpenPostgres(ctx, dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	m, err := openRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	secret := []byte(c.SecretKey)
	issuer, err := auth.NewIssuer(secret, c.TokenValidityDuration)
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	verifier, err := auth.NewVerifier(secret)
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "database DSN is empty, using in-memory storage")
	}
	if !c.AvatarUploadsEnabled() {
		logger.Info(ctx, "S3 credentials not set, avatar uploads disabled")
	}

	svc := httpapi.Services{
		Users:    services.NewUserService(m, auth.NewPasswordHasher(), issuer),
		Profiles: services.NewProfileService(m),
		Posts:    services.NewPostService(m),
		Avatars:  services.NewAvatarService(m, c),
	}

	return &App{config: c, logger: logger, repomanager: m, verifier: verifier, services: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config, app.logger, app.verifier, app.services)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "error closing storage", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
