// Package client contains the console's connection to the Loopa REST backend.
//
// # Overview
//
//  1. The Client interface: request a magic link, redeem its token, resolve
//     the current user, and a generic authenticated JSON call used by the
//     CRUD screens.
//  2. HTTPClient, the net/http implementation. Its transport is a chain of
//     RequestID -> Authorizer -> base transport; the Authorizer reads the
//     credential store on every request and adds "Authorization: Bearer ..."
//     to a clone of the request, except for paths under /users/auth/.
//
// # Error Handling
//
// Failures unwrap to sentinels matched with errors.Is: ErrUnavailable,
// ErrUnauthorized, ErrInvalidToken, ErrRejected, ErrValidation. Non-2xx
// answers come as *APIError carrying the backend's message. Each endpoint has
// its own status mapping; for /users/me only 401 and 403 yield ErrUnauthorized,
// anything else (timeouts, 5xx, bad JSON) is ErrUnavailable.
//
// The client never mutates the credential store or the session.
package client
