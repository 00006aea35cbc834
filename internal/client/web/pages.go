package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/benayed0/loopa-pro/internal/client/models"
	"github.com/benayed0/loopa-pro/internal/client/router"
	"github.com/benayed0/loopa-pro/internal/client/services"
)

// count fetches a backend collection and returns its length. Failures count
// as zero and are logged; the dashboard still renders.
func (h *handler) count(ctx context.Context, resource string) int {
	var items []json.RawMessage
	if err := h.deps.Client.Do(ctx, http.MethodGet, resource, nil, &items); err != nil {
		h.logger.Warn(ctx, "dashboard stat unavailable", "resource", resource, "error", err)
		return 0
	}
	return len(items)
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	var s stats

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error { s.Merchants = h.count(ctx, "/merchant"); return nil })
	g.Go(func() error { s.Menus = h.count(ctx, "/menu"); return nil })
	g.Go(func() error { s.Orders = h.count(ctx, "/order"); return nil })
	g.Go(func() error { s.Tables = h.count(ctx, "/table"); return nil })
	_ = g.Wait()

	h.render(w, r, http.StatusOK, "dashboard", pageData{Title: "Dashboard", Stats: s})
}

func (h *handler) list(path string) http.HandlerFunc {
	route, _ := router.Lookup(path)

	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{Title: route.Label, QRCodes: route.Path == router.PathQRCodes}

		var docs []models.Document
		if err := h.deps.Client.Do(r.Context(), http.MethodGet, route.Resource, nil, &docs); err != nil {
			h.logger.Warn(r.Context(), "list unavailable", "resource", route.Resource, "error", err)
			data.Error = services.CallErrorMessage(err)
			h.render(w, r, statusFor(err), "list", data)
			return
		}

		for _, d := range docs {
			data.Items = append(data.Items, listItem{ID: d.ID(), Name: d.Label()})
		}
		h.render(w, r, http.StatusOK, "list", data)
	}
}

// qrcode passes the backend's QR metadata for one table through as JSON.
func (h *handler) qrcode(w http.ResponseWriter, r *http.Request) {
	path := "/qrcode/table/" + url.PathEscape(chi.URLParam(r, "tableID")) + "/image"
	if base := r.URL.Query().Get("baseUrl"); base != "" {
		path += "?baseUrl=" + url.QueryEscape(base)
	}

	var out json.RawMessage
	if err := h.deps.Client.Do(r.Context(), http.MethodGet, path, nil, &out); err != nil {
		h.logger.Warn(r.Context(), "qr code unavailable", "error", err)
		http.Error(w, services.CallErrorMessage(err), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(out)
}
