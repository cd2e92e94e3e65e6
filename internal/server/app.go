// Package server wires configuration, storage, moderation and the services
// together and runs the HTTP and gRPC listeners until shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophqa/internal/buildinfo"
	"github.com/dmitrijs2005/gophqa/internal/logging"
	"github.com/dmitrijs2005/gophqa/internal/server/auth"
	"github.com/dmitrijs2005/gophqa/internal/server/config"
	"github.com/dmitrijs2005/gophqa/internal/server/moderation"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophqa/internal/server/rest"
	"github.com/dmitrijs2005/gophqa/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/gophqa/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      repomanager.RepositoryManager
	httpServer *rest.Server
	grpcServer *gs.GRPCServer
}

// openRepositories picks PostgreSQL when a DSN is configured and the
// in-memory store otherwise.
func openRepositories(ctx context.Context, c *config.Config, l logging.Logger) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		l.Warn(ctx, "no database configured, using in-memory storage")
		return repomanager.NewMemoryRepositoryManager(), nil
	}
	return repomanager.OpenPostgres(ctx, c.DatabaseDSN)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	repos, err := openRepositories(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := repos.RunMigrations(ctx); err != nil {
		return nil, multierr.Append(fmt.Errorf("migrations error: %w", err), repos.Close())
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	checker := moderation.NewClient(moderation.Config{
		URL:         c.ModerationURL,
		APIKey:      c.ModerationAPIKey,
		Timeout:     c.ModerationTimeout,
		MaxAttempts: c.ModerationMaxAttempts,
		BaseDelay:   c.ModerationBaseDelay,
		MaxDelay:    c.ModerationMaxDelay,
		RateLimit:   c.ModerationRateLimit,
	}, moderation.WithMetrics(moderation.NewMetrics(reg)), moderation.WithLogger(logger))

	verifier := auth.NewVerifier(c.SecretKey)
	qs := services.NewQuestionService(repos, verifier, checker, logger)
	as := services.NewAnswerService(repos, verifier, checker, logger)
	acs := services.NewAccountService(repos, c, logger)

	httpServer := rest.NewServer(c.EndpointAddrHTTP, logger, qs, as, acs,
		rest.WithMetrics(rest.NewMetrics(reg), reg),
		rest.WithHealth(repos.Ping),
	)

	return &App{
		config:     c,
		logger:     logger,
		repos:      repos,
		httpServer: httpServer,
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until a signal arrives, ctx is cancelled or a listener fails.
// Listener and storage shutdown errors are combined.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "version", buildinfo.String())

	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.httpServer.Run(gctx) })
	g.Go(func() error { return app.grpcServer.Run(gctx) })

	app.grpcServer.SetServing(true)

	err := g.Wait()
	app.grpcServer.SetServing(false)
	if err != nil {
		app.logger.Error(ctx, "server error", "error", err)
	}

	err = multierr.Append(err, app.repos.Close())
	app.logger.Info(context.Background(), "App stopped")
	return err
}
