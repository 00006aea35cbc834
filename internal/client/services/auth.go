// Package services contains the console's application services: the
// magic-link AuthService and the startup Bootstrapper that reconciles a
// stored credential with the backend.
package services

import (
	"context"
	"fmt"

	"github.com/benayed0/loopa-pro/internal/client/client"
	"github.com/benayed0/loopa-pro/internal/client/credentials"
	"github.com/benayed0/loopa-pro/internal/client/models"
	"github.com/benayed0/loopa-pro/internal/client/session"
	"github.com/benayed0/loopa-pro/internal/logging"
)

// AuthService defines the sign-in operations offered to the front-ends.
//
// Contract:
//   - RequestMagicLink: ask the backend to mail a link. No local state changes.
//   - VerifyMagicToken: redeem a link token, persist the credential, then
//     mark the session authenticated.
//   - Logout: clear the session and the stored credential. Idempotent.
//   - Close: release underlying client resources.
//
// Empty inputs fail with client.ErrValidation before any request is sent.
type AuthService interface {
	RequestMagicLink(ctx context.Context, email string) (*models.MagicLinkResponse, error)
	VerifyMagicToken(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	store   credentials.Store
	session *session.State
	logger  logging.Logger
}

// NewAuthService constructs an AuthService over the given collaborators.
func NewAuthService(c client.Client, store credentials.Store, state *session.State, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{client: c, store: store, session: state, logger: logger}
}

func (a *authService) RequestMagicLink(ctx context.Context, email string) (*models.MagicLinkResponse, error) {
	req := models.MagicLinkRequest{Email: email}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", client.ErrValidation, err)
	}

	resp, err := a.client.RequestMagicLink(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("request magic link: %w", err)
	}
	a.logger.Info(ctx, "magic link requested", "email", req.Email)
	return resp, nil
}

// VerifyMagicToken redeems token. The credential is written before the
// session flips, so a failed write leaves the process anonymous. Both writes
// happen under the session writer lock.
func (a *authService) VerifyMagicToken(ctx context.Context, token string) (*models.User, error) {
	req := models.VerifyRequest{Token: token}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", client.ErrValidation, err)
	}

	resp, err := a.client.VerifyMagicToken(ctx, req.Token)
	if err != nil {
		return nil, fmt.Errorf("verify magic token: %w", err)
	}

	err = a.session.Update(func() error {
		if err := a.store.Set(ctx, resp.AccessToken); err != nil {
			return fmt.Errorf("save credential: %w", err)
		}
		a.session.SetAuthenticated(resp.User)
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "signed in", "user_id", resp.User.ID)

	user := resp.User.Clone()
	return &user, nil
}

// Logout tears down the session first, then the credential. Both are always
// attempted; a store failure is returned after the session is already clear.
func (a *authService) Logout(ctx context.Context) error {
	wasAuthenticated := false
	err := a.session.Update(func() error {
		wasAuthenticated = a.session.IsAuthenticated()
		a.session.Clear()

		if err := a.store.Clear(ctx); err != nil {
			return fmt.Errorf("clear credential: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if wasAuthenticated {
		a.logger.Info(ctx, "signed out")
	}
	return nil
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
