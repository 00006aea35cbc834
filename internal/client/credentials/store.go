// Package credentials persists the console's single bearer credential.
//
// A Store holds zero or one opaque token. It does not validate, parse or
// refresh the value; that is the backend's job. Implementations are safe for
// concurrent use.
package credentials

import "context"

// TokenKey is the well-known key the credential is stored under.
const TokenKey = "loopa_token"

// Reader is the read side of a Store, all the request authorizer needs.
type Reader interface {
	// Get returns the stored credential, or "" when none is stored.
	Get(ctx context.Context) (string, error)
}

type Store interface {
	Reader
	// Set replaces any stored credential with token.
	Set(ctx context.Context, token string) error
	// Clear removes the credential. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
