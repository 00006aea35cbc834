// Package web serves the local HTML console: the magic-link sign-in pages
// and the protected areas, each behind the guards of its route.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/benayed0/loopa-pro/internal/client/client"
	"github.com/benayed0/loopa-pro/internal/client/router"
	"github.com/benayed0/loopa-pro/internal/client/services"
	"github.com/benayed0/loopa-pro/internal/client/session"
	"github.com/benayed0/loopa-pro/internal/logging"
)

// Dependencies are the collaborators the handlers need.
type Dependencies struct {
	Auth      services.AuthService
	Navigator *router.Navigator
	Session   *session.State
	Client    client.Client
	Logger    logging.Logger
}

type handler struct {
	deps   Dependencies
	logger logging.Logger
}

// NewRouter builds the console's chi router.
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	h := &handler{deps: deps, logger: logger.With("module", "web")}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/", h.redirect(router.PathDashboard))

	r.Group(func(r chi.Router) {
		r.Get(router.PathLogin, h.loginPage)
		r.With(h.sameOrigin).Post(router.PathLogin, h.loginSubmit)
		r.Get(router.PathVerify, h.verify)
		r.With(h.sameOrigin).Post("/logout", h.logout)
	})

	r.Group(func(r chi.Router) {
		r.With(h.guard(router.PathDashboard)).Get(router.PathDashboard, h.dashboard)
		for _, path := range []string{router.PathMerchants, router.PathMenus, router.PathOrders, router.PathTables, router.PathQRCodes, router.PathUsers} {
			r.With(h.guard(path)).Get(path, h.list(path))
		}
		r.With(h.guard(router.PathQRCodes)).Get(router.PathQRCodes+"/{tableID}", h.qrcode)
	})

	r.NotFound(h.redirect(router.PathDashboard))

	return r
}

// Server runs the console on a TCP address until its context ends.
type Server struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewServer(address string, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{address: address, handler: NewRouter(deps), logger: logger.With("module", "web_server")}
}

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.handler, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping web console...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting web console", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *handler) redirect(to string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, to, http.StatusSeeOther)
	}
}
