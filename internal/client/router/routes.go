// Package router holds the console's route table and the guards evaluated
// before a protected area is entered.
package router

import (
	"slices"
	"strings"

	"github.com/benayed0/loopa-pro/internal/client/models"
)

const (
	PathRoot      = "/"
	PathLogin     = "/auth/login"
	PathVerify    = "/auth/verify"
	PathDashboard = "/dashboard"
	PathMerchants = "/merchants"
	PathMenus     = "/menus"
	PathOrders    = "/orders"
	PathTables    = "/tables"
	PathQRCodes   = "/qrcodes"
	PathUsers     = "/users"
)

// Route is one area of the console.
type Route struct {
	Path  string
	Label string
	Icon  string
	// Public routes are reachable without a session.
	Public bool
	// Roles restricts a protected route; empty means any signed-in user.
	Roles []models.Role
	// Resource is the backend collection listed by the area, if any.
	Resource string
}

var table = []Route{
	{Path: PathLogin, Label: "Connexion", Public: true},
	{Path: PathVerify, Label: "Vérification", Public: true},
	{Path: PathDashboard, Label: "Dashboard", Icon: "📊"},
	{Path: PathMerchants, Label: "Merchants", Icon: "🏪", Roles: []models.Role{models.RoleOwner, models.RoleManager}, Resource: "/merchant"},
	{Path: PathMenus, Label: "Menus", Icon: "📋", Resource: "/menu"},
	{Path: PathOrders, Label: "Commandes", Icon: "🛒", Resource: "/order"},
	{Path: PathTables, Label: "Tables", Icon: "🪑", Resource: "/table"},
	{Path: PathQRCodes, Label: "QR Codes", Icon: "📱", Resource: "/table"},
	{Path: PathUsers, Label: "Utilisateurs", Icon: "👥", Roles: []models.Role{models.RoleOwner}, Resource: "/users"},
}

// Routes returns a copy of the route table in sidebar order.
func Routes() []Route {
	out := make([]Route, len(table))
	for i, r := range table {
		out[i] = r
		out[i].Roles = slices.Clone(r.Roles)
	}
	return out
}

// Normalize strips the query, fragment and trailing slash of path.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

// Lookup finds the route for path. The root and unknown paths are not
// routes; see Resolve.
func Lookup(path string) (Route, bool) {
	path = Normalize(path)
	for _, r := range table {
		if r.Path == path {
			r.Roles = slices.Clone(r.Roles)
			return r, true
		}
	}
	return Route{}, false
}

// Resolve maps path to the route that will actually be entered: the root
// and anything unknown land on the dashboard.
func Resolve(path string) Route {
	if r, ok := Lookup(path); ok {
		return r
	}
	r, _ := Lookup(PathDashboard)
	return r
}
