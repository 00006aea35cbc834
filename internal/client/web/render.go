package web

import (
	"errors"
	"net/http"

	"github.com/benayed0/loopa-pro/internal/client/client"
	"github.com/benayed0/loopa-pro/internal/client/models"
	"github.com/benayed0/loopa-pro/internal/client/router"
)

type stats struct {
	Merchants int
	Menus     int
	Orders    int
	Tables    int
}

type listItem struct {
	ID   string
	Name string
}

type pageData struct {
	Title string
	User  *models.User
	Menu  []router.MenuItem

	Email     string
	Error     string
	Notice    string
	DebugLink string
	Sent      bool

	Stats   stats
	Items   []listItem
	QRCodes bool
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	data.User = h.deps.Session.User()
	data.Menu = router.Menu(h.deps.Session)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error(r.Context(), "template failed", "template", name, "error", err)
	}
}

// statusFor maps a client error to the status shown to the browser.
func statusFor(err error) int {
	switch {
	case errors.Is(err, client.ErrValidation),
		errors.Is(err, client.ErrInvalidToken),
		errors.Is(err, client.ErrRejected):
		return http.StatusBadRequest
	case errors.Is(err, client.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusServiceUnavailable
	}
}
