// Package app wires configuration, logging, snapshot persistence, the stores
// and the terminal front end into a runnable program. Stores are loaded once
// at start and saved when the front end exits.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/creationhub/internal/access"
	"github.com/dmitrijs2005/creationhub/internal/cli"
	"github.com/dmitrijs2005/creationhub/internal/config"
	"github.com/dmitrijs2005/creationhub/internal/logging"
	"github.com/dmitrijs2005/creationhub/internal/session"
	"github.com/dmitrijs2005/creationhub/internal/snapshot"
)

// saveTimeout bounds the final snapshot save, which runs after the run
// context may already be cancelled.
const saveTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	backend snapshot.Backend
	gateway *snapshot.Gateway
	stores  *snapshot.Stores
	coord   *access.Coordinator
	sess    *session.Manager
	in      io.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	backend, err := snapshot.Open(ctx, c.SnapshotOptions())
	if err != nil {
		return nil, fmt.Errorf("snapshot backend init error: %w", err)
	}

	gw := snapshot.NewGateway(backend, logger)
	stores, err := gw.LoadAll(ctx)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("snapshot load error: %w", err)
	}

	coord := access.NewCoordinator(stores.Users, stores.Containers, stores.Events, stores.Messages, logger)
	sess := session.NewManager(stores.Users, c.SessionSecret, c.SessionTTL, logger)

	return &App{
		config:  c,
		logger:  logger,
		backend: backend,
		gateway: gw,
		stores:  stores,
		coord:   coord,
		sess:    sess,
		in:      os.Stdin,
		out:     os.Stdout,
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

// Run serves the terminal until the user exits or a signal arrives, then
// saves every store and closes the backend.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.SnapshotBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		cli.NewApp(app.coord, app.sess, app.stores.Users, app.in, app.out).Run(ctx)
	}()

	select {
	case <-done:
		wg.Wait()
	case <-ctx.Done():
		// the front end may be blocked reading stdin; do not wait for it
		app.logger.Info(ctx, "shutdown requested")
	}

	return app.shutdown()
}

func (app *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	saveErr := app.gateway.SaveAll(ctx, app.stores)
	if saveErr != nil {
		app.logger.Error(ctx, "snapshot save failed", logging.Err(saveErr))
	} else {
		app.logger.Info(ctx, "snapshots saved")
	}

	if err := app.backend.Close(); err != nil {
		app.logger.Error(ctx, "snapshot backend close failed", logging.Err(err))
		if saveErr == nil {
			return err
		}
	}
	return saveErr
}
