// Package server initializes and runs the nasomail server: it opens the
// database, builds the shared context, serves the HTTP API and runs the
// reachability self-test once the listener is bound.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/nasomail/internal/logging"
	"github.com/dmitrijs2005/nasomail/internal/netx"
	"github.com/dmitrijs2005/nasomail/internal/server/appctx"
	"github.com/dmitrijs2005/nasomail/internal/server/config"
	"github.com/dmitrijs2005/nasomail/internal/server/db"
	"github.com/dmitrijs2005/nasomail/internal/server/httpapi"
	"github.com/dmitrijs2005/nasomail/internal/server/repositories/checks"
)

type App struct {
	logger logging.Logger
	state  *appctx.AppContext
	checks checks.Repository
	http   *httpapi.HTTPServer
	client *http.Client
}

// NewApp opens the database, applies the schema file and migrations, and
// prepares the HTTP server. Every error here is a startup failure.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	conn, dialect, err := db.Open(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	n, err := db.ApplySchema(ctx, conn, c.SchemaPath)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	logger.Info(ctx, "schema applied", "path", c.SchemaPath, "statements", n)

	if err := db.RunMigrations(ctx, conn, dialect); err != nil {
		_ = conn.Close()
		return nil, err
	}

	state := appctx.New(conn, *c)
	repo := checks.NewSQLRepository(conn, dialect)

	return &App{
		logger: logger,
		state:  state,
		checks: repo,
		http:   httpapi.NewHTTPServer(c.Addr, logger, state.Token, repo, c.ShutdownTimeout),
		client: netx.NewHTTPClient(c.ProbeTimeout),
	}, nil
}

// State exposes the shared context.
func (app *App) State() *appctx.AppContext {
	return app.state
}

// Listen binds the HTTP listener ahead of Run. Calling it is optional.
func (app *App) Listen() (net.Addr, error) {
	return app.http.Listen()
}

// Run serves until ctx is canceled or SIGINT/SIGTERM arrives. The self-test
// starts once the listener is bound and runs beside the server; its outcome
// never stops serving.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		err := app.state.ReadPool(func(pool *sql.DB) error {
			return pool.Close()
		})
		if err != nil {
			app.logger.Error(ctx, "failed to close database", "err", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	addr, err := app.Listen()
	if err != nil {
		return err
	}
	app.logger.Info(ctx, "listener bound", "addr", addr.String(), "pub_addr", app.state.Config().PubAddr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.http.Run(gctx)
	})

	var selfTest sync.WaitGroup
	selfTest.Add(1)
	go func() {
		defer selfTest.Done()
		app.runSelfTest(gctx)
	}()

	err = g.Wait()
	selfTest.Wait()

	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return err
}

func (app *App) runSelfTest(ctx context.Context) {
	var delay time.Duration
	_ = app.state.ReadConfig(func(c config.Config) error {
		delay = c.SelfTestDelay
		return nil
	})
	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
	SelfTest(ctx, app.state, app.client, app.logger.With("module", "self_test"), app.checks)
}
