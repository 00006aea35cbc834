package web

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/benayed0/loopa-pro/internal/client/router"
)

// guard protects a handler with the guards of the route at path. The
// decision is taken per request against the live session.
func (h *handler) guard(path string) func(http.Handler) http.Handler {
	route, ok := router.Lookup(path)
	if !ok {
		panic("web: no route for " + path)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := h.deps.Navigator.Authorize(r.Context(), route)
			if err != nil {
				http.Error(w, "request cancelled", http.StatusServiceUnavailable)
				return
			}
			if !d.Allow {
				h.logger.Debug(r.Context(), "guard denied", "path", r.URL.Path, "redirect", d.Redirect)
				http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sameOrigin refuses form posts sent from another site. Browsers attach
// Sec-Fetch-Site or Origin to those; requests carrying neither pass.
func (h *handler) sameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		crossSite := false
		switch r.Header.Get("Sec-Fetch-Site") {
		case "", "same-origin", "none":
		default:
			crossSite = true
		}
		if origin := r.Header.Get("Origin"); origin != "" {
			u, err := url.Parse(origin)
			if err != nil || u.Host != r.Host {
				crossSite = true
			}
		}

		if crossSite {
			h.logger.Warn(r.Context(), "cross-site request refused", "path", r.URL.Path, "origin", r.Header.Get("Origin"))
			http.Error(w, "cross-site request refused", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(started),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
