// Package httpapi serves the development backend's JSON API: the magic
// link endpoints, /users/me and a few read-only merchant collections.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/benayed0/loopa-pro/internal/devserver/users"
	"github.com/benayed0/loopa-pro/internal/logging"
)

type Server struct {
	address string
	users   *users.Service
	logger  logging.Logger
}

func NewServer(a string, l logging.Logger, us *users.Service) *Server {
	return &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
	}
}

// Handler builds the router. Everything outside /users/auth/ requires a
// bearer credential.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(s.accessTokenMiddleware)

	r.Post("/users/auth/request-magic-link", s.requestMagicLink)
	r.Post("/users/auth/verify", s.verify)
	r.Get("/users/me", s.me)
	r.Get("/users", s.listUsers)

	r.Get("/merchant", s.listMerchants)
	r.Get("/menu", s.list(menusOf))
	r.Get("/order", s.list(ordersOf))
	r.Get("/table", s.list(tablesOf))
	r.Get("/qrcode/table/{tableID}/image", s.qrcode)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Cannot "+r.Method+" "+r.URL.Path)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
