package router

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benayed0/loopa-pro/internal/client/services"
	"github.com/benayed0/loopa-pro/internal/client/session"
	"github.com/benayed0/loopa-pro/internal/logging"
)

// maxRedirects bounds guard redirect chains.
const maxRedirects = 4

var ErrRedirectLoop = errors.New("too many redirects")

// Settler is satisfied by services.Bootstrapper.
type Settler interface {
	Done() <-chan struct{}
}

// Navigator moves the console between routes.
//
// Before evaluating guards on a protected route it waits, up to a bounded
// time, for the startup bootstrap to settle, so a valid stored credential is
// not bounced to the login page while it is still being resolved. When the
// wait expires the guards see whatever the session holds, which is
// anonymous: deny by default.
type Navigator struct {
	state  *session.State
	auth   services.AuthService
	boot   Settler
	wait   time.Duration
	logger logging.Logger

	mu      sync.RWMutex
	current Route
}

func NewNavigator(state *session.State, auth services.AuthService, boot Settler, wait time.Duration, logger logging.Logger) *Navigator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Navigator{state: state, auth: auth, boot: boot, wait: wait, logger: logger}
}

// Authorize evaluates the guards of r against the live session.
func (n *Navigator) Authorize(ctx context.Context, r Route) (Decision, error) {
	if !r.Public {
		if err := n.awaitBootstrap(ctx); err != nil {
			return Decision{}, err
		}
	}
	return Evaluate(ctx, n.state, r), nil
}

// Navigate resolves path, follows guard redirects and returns the route
// finally entered.
func (n *Navigator) Navigate(ctx context.Context, path string) (Route, error) {
	r := Resolve(path)
	for i := 0; i <= maxRedirects; i++ {
		d, err := n.Authorize(ctx, r)
		if err != nil {
			return Route{}, err
		}
		if d.Allow {
			n.mu.Lock()
			n.current = r
			n.mu.Unlock()
			return r, nil
		}
		n.logger.Debug(ctx, "navigation redirected", "from", r.Path, "to", d.Redirect)
		r = Resolve(d.Redirect)
	}
	return Route{}, fmt.Errorf("navigate %s: %w", path, ErrRedirectLoop)
}

// Current is the last route entered.
func (n *Navigator) Current() Route {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// Logout clears the session and the credential, then goes to the login
// page. Navigation happens even if the credential could not be cleared; the
// session is already anonymous by then.
func (n *Navigator) Logout(ctx context.Context) (Route, error) {
	logoutErr := n.auth.Logout(ctx)
	if logoutErr != nil {
		n.logger.Error(ctx, "logout: credential not cleared", "error", logoutErr)
	}
	r, err := n.Navigate(ctx, PathLogin)
	if err != nil {
		return r, err
	}
	return r, logoutErr
}

func (n *Navigator) awaitBootstrap(ctx context.Context) error {
	if n.boot == nil {
		return nil
	}
	select {
	case <-n.boot.Done():
		return nil
	default:
	}
	if n.wait <= 0 {
		return nil
	}

	timer := time.NewTimer(n.wait)
	defer timer.Stop()

	select {
	case <-n.boot.Done():
	case <-timer.C:
		n.logger.Warn(ctx, "bootstrap still resolving, evaluating guards on current session")
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
