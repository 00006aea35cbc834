package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/benayed0/loopa-pro/internal/devserver/users"
)

// document is a loosely typed backend record, as the console reads it.
type document map[string]any

const tablesPerMerchant = 3

func (s *Server) listMerchants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()).Merchants)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	if !slices.Contains(u.Roles, users.RoleOwner) {
		writeError(w, http.StatusForbidden, "Forbidden resource")
		return
	}
	writeJSON(w, http.StatusOK, []*users.User{u})
}

// list serves a collection derived from the caller's merchants.
func (s *Server) list(build func(users.Merchant) []document) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs := []document{}
		for _, m := range userFrom(r.Context()).Merchants {
			docs = append(docs, build(m)...)
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

func (s *Server) qrcode(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableID")

	for _, m := range userFrom(r.Context()).Merchants {
		for _, t := range tablesOf(m) {
			if t["_id"] != tableID {
				continue
			}
			base := r.URL.Query().Get("baseUrl")
			if base == "" {
				base = "https://menu.loopa.tn"
			}
			writeJSON(w, http.StatusOK, document{
				"tableId": tableID,
				"number":  t["number"],
				"url":     strings.TrimRight(base, "/") + "/" + url.PathEscape(m.ID) + "?table=" + url.QueryEscape(tableID),
			})
			return
		}
	}

	writeError(w, http.StatusNotFound, "Table not found")
}

func menusOf(m users.Merchant) []document {
	return []document{{"_id": m.ID + "-menu", "name": "Carte principale", "merchant": m.ID}}
}

func tablesOf(m users.Merchant) []document {
	docs := make([]document, 0, tablesPerMerchant)
	for i := 1; i <= tablesPerMerchant; i++ {
		docs = append(docs, document{
			"_id":      fmt.Sprintf("%s-table-%d", m.ID, i),
			"number":   fmt.Sprintf("T%d", i),
			"merchant": m.ID,
		})
	}
	return docs
}

func ordersOf(m users.Merchant) []document {
	return []document{
		{"_id": m.ID + "-order-1", "status": "pending", "table": m.ID + "-table-1"},
		{"_id": m.ID + "-order-2", "status": "served", "table": m.ID + "-table-2"},
	}
}
