package router

import (
	"context"

	"github.com/benayed0/loopa-pro/internal/client/models"
	"github.com/benayed0/loopa-pro/internal/client/session"
)

// Decision is the result of a guard. Redirect is set when Allow is false.
type Decision struct {
	Allow    bool
	Redirect string
}

var allow = Decision{Allow: true}

// Guard decides whether a route may be entered. Guards read the session at
// call time, never a cached copy.
type Guard func(ctx context.Context, r Route) Decision

// AuthGuard lets signed-in sessions through and sends everyone else to the
// login page.
func AuthGuard(state *session.State) Guard {
	return func(ctx context.Context, r Route) Decision {
		if state.IsAuthenticated() {
			return allow
		}
		return Decision{Redirect: PathLogin}
	}
}

// RoleGuard requires one of roles. Anonymous sessions go to the login page,
// signed-in users without the role go back to the dashboard.
func RoleGuard(state *session.State, roles ...models.Role) Guard {
	return func(ctx context.Context, r Route) Decision {
		if !state.IsAuthenticated() {
			return Decision{Redirect: PathLogin}
		}
		if state.HasAnyRole(roles...) {
			return allow
		}
		return Decision{Redirect: PathDashboard}
	}
}

// Guards returns the chain protecting r. Public routes have none.
func Guards(state *session.State, r Route) []Guard {
	if r.Public {
		return nil
	}
	guards := []Guard{AuthGuard(state)}
	if len(r.Roles) > 0 {
		guards = append(guards, RoleGuard(state, r.Roles...))
	}
	return guards
}

// Evaluate runs the guards of r in order and returns the first denial.
func Evaluate(ctx context.Context, state *session.State, r Route) Decision {
	for _, g := range Guards(state, r) {
		if d := g(ctx, r); !d.Allow {
			return d
		}
	}
	return allow
}
