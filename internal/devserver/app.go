// Package devserver wires and runs the in-memory development backend used
// to exercise the console without the production API.
package devserver

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/benayed0/loopa-pro/internal/devserver/config"
	"github.com/benayed0/loopa-pro/internal/devserver/httpapi"
	"github.com/benayed0/loopa-pro/internal/devserver/users"
	"github.com/benayed0/loopa-pro/internal/logging"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
}

func NewApp(c *config.Config) *App {
	logger := logging.New(os.Stdout, c.LogLevel)
	us := users.NewService(users.NewMemoryRepository(), c)

	return &App{config: c, logger: logger, userService: us}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until SIGINT/SIGTERM/SIGQUIT or until ctx is cancelled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
