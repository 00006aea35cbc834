package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/benayed0/loopa-pro/internal/client/client"
	"github.com/benayed0/loopa-pro/internal/client/config"
	"github.com/benayed0/loopa-pro/internal/client/credentials"
	"github.com/benayed0/loopa-pro/internal/client/router"
	"github.com/benayed0/loopa-pro/internal/client/services"
	"github.com/benayed0/loopa-pro/internal/client/session"
	"github.com/benayed0/loopa-pro/internal/client/storage"
	"github.com/benayed0/loopa-pro/internal/client/web"
	"github.com/benayed0/loopa-pro/internal/logging"
)

// App owns every long-lived object of a console process. The session is
// created here and torn down when Run returns.
type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	client  client.Client
	store   credentials.Store
	session *session.State
	auth    services.AuthService
	boot    *services.Bootstrapper
	nav     *router.Navigator
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the local credential database and wires the backend client,
// session, bootstrapper and navigator.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := credentials.NewSQLiteStore(db)

	apiClient, err := client.NewHTTPClient(c.BackendURL, store, logger.With("module", "backend_client"),
		client.WithTimeout(c.RequestTimeout))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := newApp(c, logger, apiClient, store)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, apiClient client.Client, store credentials.Store) *App {
	state := session.New()
	auth := services.NewAuthService(apiClient, store, state, logger.With("module", "auth"))
	boot := services.NewBootstrapper(apiClient, store, state, logger.With("module", "bootstrap"))

	return &App{
		config:  c,
		logger:  logger,
		client:  apiClient,
		store:   store,
		session: state,
		auth:    auth,
		boot:    boot,
		nav:     router.NewNavigator(state, auth, boot, c.BootstrapWait, logger.With("module", "navigator")),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run restores the stored session in the background, serves the web console
// when configured, and blocks in the REPL until the operator exits or ctx
// ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer a.close()

	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.bootstrap(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.watchSession(ctx)
	}()

	if a.config.ListenAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			srv := web.NewServer(a.config.ListenAddr, web.Dependencies{
				Auth:      a.auth,
				Navigator: a.nav,
				Session:   a.session,
				Client:    a.client,
				Logger:    a.logger,
			})
			if err := srv.Run(ctx); err != nil {
				a.logger.Error(ctx, "web console stopped", "error", err)
			}
		}()
	}

	fmt.Fprintln(a.out, "Welcome to Loopa Pro console (type 'help' for commands)")

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.status, bufio.NewScanner(a.reader), interactive())
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// bootstrap settles the session. Failures are logged only; the operator
// simply finds the console signed out.
func (a *App) bootstrap(ctx context.Context) {
	outcome, err := a.boot.Run(ctx)
	if err != nil {
		a.logger.Error(ctx, "bootstrap failed", "outcome", outcome.String(), "error", err)
		return
	}
	a.logger.Debug(ctx, "bootstrap settled", "outcome", outcome.String())
}

func (a *App) watchSession(ctx context.Context) {
	ch, unsubscribe := a.session.Subscribe()
	defer unsubscribe()

	for {
		select {
		case s, ok := <-ch:
			if !ok {
				return
			}
			if s.Authenticated {
				a.logger.Info(ctx, "session authenticated", "user_id", s.User.ID)
			} else {
				a.logger.Info(ctx, "session cleared")
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) close() {
	a.session.Close()
	if err := a.auth.Close(context.Background()); err != nil {
		a.logger.Warn(context.Background(), "closing backend client", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status is shown in the prompt: the operator's email once signed in,
// otherwise the bootstrap phase.
func (a *App) status() string {
	parts := []string{}
	if u := a.session.User(); u != nil {
		parts = append(parts, u.Email)
	} else {
		parts = append(parts, a.boot.Phase().String())
	}
	if r := a.nav.Current(); r.Path != "" {
		parts = append(parts, r.Path)
	}
	return "(" + strings.Join(parts, " ") + ")"
}
