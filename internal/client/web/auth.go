package web

import (
	"net/http"
	"net/url"

	"github.com/benayed0/loopa-pro/internal/client/router"
	"github.com/benayed0/loopa-pro/internal/client/services"
)

func (h *handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", pageData{Title: "Connexion"})
}

func (h *handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")

	resp, err := h.deps.Auth.RequestMagicLink(r.Context(), email)
	if err != nil {
		h.logger.Warn(r.Context(), "magic link request failed", "error", err)
		h.render(w, r, statusFor(err), "login", pageData{
			Title: "Connexion",
			Email: email,
			Error: services.LinkErrorMessage(err),
		})
		return
	}

	data := pageData{Title: "Connexion", Sent: true, Notice: resp.Message}
	if data.Notice == "" {
		data.Notice = services.MsgLinkSent
	}
	if resp.MagicToken != "" {
		data.DebugLink = router.PathVerify + "?token=" + url.QueryEscape(resp.MagicToken)
	}
	h.render(w, r, http.StatusOK, "login", data)
}

func (h *handler) verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	if _, err := h.deps.Auth.VerifyMagicToken(r.Context(), token); err != nil {
		h.logger.Warn(r.Context(), "magic link verification failed", "error", err)
		h.render(w, r, statusFor(err), "verify", pageData{
			Title: "Vérification",
			Error: services.VerifyErrorMessage(err),
		})
		return
	}

	route, err := h.deps.Navigator.Navigate(r.Context(), router.PathDashboard)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	http.Redirect(w, r, route.Path, http.StatusSeeOther)
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	route, err := h.deps.Navigator.Logout(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "logout incomplete", "error", err)
	}
	to := route.Path
	if to == "" {
		to = router.PathLogin
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
