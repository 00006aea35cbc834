package client

import (
	"context"

	"github.com/benayed0/loopa-pro/internal/client/models"
)

// Client is the console's view of the Loopa backend.
//
// None of its methods touch the credential store or the session; the
// bearer header is added by the Authorizer stage of the transport.
type Client interface {
	// RequestMagicLink asks the backend to mail a sign-in link to email.
	RequestMagicLink(ctx context.Context, email string) (*models.MagicLinkResponse, error)
	// VerifyMagicToken redeems a one-time token for a bearer credential.
	VerifyMagicToken(ctx context.Context, token string) (*models.VerifyResponse, error)
	// GetCurrentUser resolves the attached credential to a profile.
	GetCurrentUser(ctx context.Context) (*models.User, error)
	// Do performs an arbitrary authenticated JSON call for the CRUD screens.
	Do(ctx context.Context, method, path string, body, out any) error
	Close() error
}
