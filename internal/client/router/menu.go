package router

import "github.com/benayed0/loopa-pro/internal/client/session"

// MenuItem is one sidebar entry.
type MenuItem struct {
	Label string
	Icon  string
	Path  string
}

// Menu lists the protected routes the current session may enter.
func Menu(state *session.State) []MenuItem {
	if !state.IsAuthenticated() {
		return nil
	}
	var items []MenuItem
	for _, r := range table {
		if r.Public {
			continue
		}
		if len(r.Roles) > 0 && !state.HasAnyRole(r.Roles...) {
			continue
		}
		items = append(items, MenuItem{Label: r.Label, Icon: r.Icon, Path: r.Path})
	}
	return items
}
