package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/benayed0/loopa-pro/internal/client/client"
	"github.com/benayed0/loopa-pro/internal/client/credentials"
	"github.com/benayed0/loopa-pro/internal/client/models"
	"github.com/benayed0/loopa-pro/internal/client/session"
	"github.com/benayed0/loopa-pro/internal/logging"
)

// Outcome is how a bootstrap run ended.
type Outcome int

const (
	// OutcomePending means Run has not settled yet.
	OutcomePending Outcome = iota
	// OutcomeAnonymous: no credential was stored.
	OutcomeAnonymous
	// OutcomeAuthenticated: the credential resolved to a user.
	OutcomeAuthenticated
	// OutcomeCredentialRejected: the backend refused the credential and it was evicted.
	OutcomeCredentialRejected
	// OutcomeUnreachable: the check failed for another reason; the credential is kept.
	OutcomeUnreachable
	// OutcomeSuperseded: a sign-in or logout changed the session while the
	// check was in flight; its result was discarded.
	OutcomeSuperseded
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeAnonymous:
		return "anonymous"
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeCredentialRejected:
		return "credential-rejected"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeSuperseded:
		return "superseded"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Phase is the session-level state the bootstrapper drives.
type Phase int32

const (
	PhaseAnonymous Phase = iota
	PhaseResolving
	PhaseAuthenticated
	// PhaseAnonymousPreserved: anonymous for this run, credential still stored.
	PhaseAnonymousPreserved
)

func (p Phase) String() string {
	switch p {
	case PhaseAnonymous:
		return "anonymous"
	case PhaseResolving:
		return "resolving"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAnonymousPreserved:
		return "anonymous (credential kept)"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

// Bootstrapper reconciles the stored credential with the backend once per
// process. Only an explicit authorization rejection evicts the credential;
// any other failure leaves it in place for the next run.
//
// The front-ends are live while the check runs. Its result is applied under
// session.State.Update and only if the session generation and the stored
// credential are still the ones it started from.
type Bootstrapper struct {
	client  client.Client
	store   credentials.Store
	session *session.State
	logger  logging.Logger

	once       sync.Once
	done       chan struct{}
	phase      atomic.Int32
	settledGen atomic.Uint64
	outcome    Outcome
	err        error
}

func NewBootstrapper(c client.Client, store credentials.Store, state *session.State, logger logging.Logger) *Bootstrapper {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Bootstrapper{
		client:  c,
		store:   store,
		session: state,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Run performs the reconciliation. Later calls return the first result
// without touching the network again.
func (b *Bootstrapper) Run(ctx context.Context) (Outcome, error) {
	b.once.Do(func() {
		defer close(b.done)
		b.outcome, b.err = b.run(ctx)
	})
	<-b.done
	return b.outcome, b.err
}

// Done is closed once Run has settled.
func (b *Bootstrapper) Done() <-chan struct{} {
	return b.done
}

// Phase reports the bootstrap phase, folded with later session changes:
// once anybody signs in or out after the check settled, the phase follows
// the live session.
func (b *Bootstrapper) Phase() Phase {
	p := Phase(b.phase.Load())
	switch {
	case p == PhaseResolving:
		return p
	case b.session.IsAuthenticated():
		return PhaseAuthenticated
	case b.session.Generation() != b.settledGen.Load():
		return PhaseAnonymous
	}
	return p
}

// Outcome returns OutcomePending until Run settles.
func (b *Bootstrapper) Outcome() Outcome {
	select {
	case <-b.done:
		return b.outcome
	default:
		return OutcomePending
	}
}

func (b *Bootstrapper) setPhase(p Phase) {
	b.phase.Store(int32(p))
}

func (b *Bootstrapper) settle(p Phase) {
	b.settledGen.Store(b.session.Generation())
	b.setPhase(p)
}

func (b *Bootstrapper) run(ctx context.Context) (Outcome, error) {
	gen := b.session.Generation()

	token, err := b.store.Get(ctx)
	if err != nil {
		// Unreadable store: nothing to evict, nothing to resolve.
		b.logger.Warn(ctx, "bootstrap: credential store unreadable", "error", err)
		b.settle(PhaseAnonymous)
		return OutcomeAnonymous, fmt.Errorf("read credential: %w", err)
	}
	if token == "" {
		b.logger.Debug(ctx, "bootstrap: no stored credential")
		b.settle(PhaseAnonymous)
		return OutcomeAnonymous, nil
	}

	b.setPhase(PhaseResolving)
	b.logger.Debug(ctx, "bootstrap: resolving stored credential", "has_credential", true)

	user, resolveErr := b.client.GetCurrentUser(ctx)

	var (
		outcome = OutcomeSuperseded
		runErr  error
	)
	_ = b.session.Update(func() error {
		current, err := b.store.Get(ctx)
		if err != nil || current != token || b.session.Generation() != gen {
			return nil
		}
		outcome, runErr = b.apply(ctx, user, resolveErr)
		return nil
	})

	if outcome == OutcomeSuperseded {
		b.logger.Info(ctx, "bootstrap: session changed while resolving, result discarded")
		b.settle(PhaseAnonymous)
	}
	return outcome, runErr
}

// apply runs under the session writer lock.
func (b *Bootstrapper) apply(ctx context.Context, user *models.User, err error) (Outcome, error) {
	if err == nil {
		b.session.SetAuthenticated(*user)
		b.settle(PhaseAuthenticated)
		b.logger.Info(ctx, "bootstrap: session restored", "user_id", user.ID)
		return OutcomeAuthenticated, nil
	}

	if errors.Is(err, client.ErrUnauthorized) {
		b.settle(PhaseAnonymous)
		if clearErr := b.store.Clear(ctx); clearErr != nil {
			b.logger.Error(ctx, "bootstrap: failed to evict rejected credential", "error", clearErr)
			return OutcomeCredentialRejected, fmt.Errorf("evict credential: %w", clearErr)
		}
		b.logger.Info(ctx, "bootstrap: stored credential rejected, evicted")
		return OutcomeCredentialRejected, nil
	}

	b.settle(PhaseAnonymousPreserved)
	b.logger.Warn(ctx, "bootstrap: backend unreachable, keeping credential", "error", err)
	return OutcomeUnreachable, nil
}
