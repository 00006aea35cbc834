package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/benayed0/loopa-pro/internal/client/client"
	"github.com/benayed0/loopa-pro/internal/client/models"
	"github.com/benayed0/loopa-pro/internal/client/router"
	"github.com/benayed0/loopa-pro/internal/client/services"
)

// maxListed bounds how many records "open" prints for a list area.
const maxListed = 20

// Login requests a magic link for the email given as argument or prompted.
func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = GetSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	resp, err := a.auth.RequestMagicLink(ctx, email)
	if err != nil {
		a.logger.Debug(ctx, "magic link request failed", "error", err)
		fmt.Fprintln(a.out, services.LinkErrorMessage(err))
		return nil
	}

	msg := resp.Message
	if msg == "" {
		msg = services.MsgLinkSent
	}
	fmt.Fprintln(a.out, msg)
	if resp.MagicToken != "" {
		fmt.Fprintf(a.out, "Debug token: verify %s\n", resp.MagicToken)
	}
	return nil
}

// Verify redeems a magic-link token and enters the dashboard.
func (a *App) Verify(ctx context.Context, args []string) error {
	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		var err error
		if token, err = GetSecret(a.reader, "Enter magic-link token", a.out); err != nil {
			return err
		}
	}

	user, err := a.auth.VerifyMagicToken(ctx, token)
	if err != nil {
		a.logger.Debug(ctx, "magic link verification failed", "error", err)
		fmt.Fprintln(a.out, services.VerifyErrorMessage(err))
		return nil
	}

	fmt.Fprintf(a.out, "Signed in as %s <%s>\n", user.DisplayName(), user.Email)
	return a.Open(ctx, []string{router.PathDashboard})
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintf(a.out, "Not signed in (%s)\n", a.boot.Phase())
		return nil
	}

	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}
	fmt.Fprintf(a.out, "[%s] %s <%s>\n", u.Initials(), u.DisplayName(), u.Email)
	fmt.Fprintf(a.out, "  id:    %s\n", u.ID)
	fmt.Fprintf(a.out, "  roles: %s\n", strings.Join(roles, ", "))
	for _, m := range u.Merchants {
		fmt.Fprintf(a.out, "  merchant: %s (%s)\n", m.Name, m.ID)
	}
	return nil
}

func (a *App) Menu(ctx context.Context) error {
	items := router.Menu(a.session)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Sign in to see the menu.")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(a.out, "  %s %-14s %s\n", it.Icon, it.Label, it.Path)
	}
	return nil
}

// Open navigates to a path and, for list areas, prints what the backend
// returns. A rejected call is reported; it never signs the operator out.
func (a *App) Open(ctx context.Context, args []string) error {
	path := router.PathRoot
	if len(args) > 0 {
		path = args[0]
	}

	route, err := a.nav.Navigate(ctx, path)
	if err != nil {
		return err
	}
	if route.Path != router.Normalize(path) {
		fmt.Fprintf(a.out, "Redirected to %s\n", route.Path)
	}
	fmt.Fprintf(a.out, "== %s ==\n", route.Label)

	if route.Resource == "" {
		return nil
	}

	var docs []models.Document
	if err := a.client.Do(ctx, http.MethodGet, route.Resource, nil, &docs); err != nil {
		if !errors.Is(err, client.ErrUnavailable) {
			a.logger.Warn(ctx, "list call rejected", "resource", route.Resource, "error", err)
		}
		fmt.Fprintln(a.out, services.CallErrorMessage(err))
		return nil
	}

	if len(docs) == 0 {
		fmt.Fprintln(a.out, "  (empty)")
	}
	for i, d := range docs {
		if i == maxListed {
			fmt.Fprintf(a.out, "  ... %d more\n", len(docs)-maxListed)
			break
		}
		fmt.Fprintf(a.out, "  %s  %s\n", d.ID(), d.Label())
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	route, err := a.nav.Logout(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed out. Now at %s\n", route.Path)
	return nil
}
