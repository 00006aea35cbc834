package client

import (
	"net/http"
	"strings"

	"github.com/benayed0/loopa-pro/internal/client/credentials"
	"github.com/benayed0/loopa-pro/internal/logging"
)

const (
	// AuthEndpointMarker identifies the unauthenticated auth endpoints.
	AuthEndpointMarker = "/users/auth/"

	AuthorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

// IsAuthEndpoint reports whether req targets one of the endpoints that must
// never see the credential.
func IsAuthEndpoint(req *http.Request) bool {
	return strings.Contains(req.URL.Path, AuthEndpointMarker)
}

// Authorizer is a transport stage that attaches the stored credential as a
// bearer header. The caller's request is never modified; a clone carries the
// header. It does not retry, block or look at responses.
type Authorizer struct {
	Store  credentials.Reader
	Next   http.RoundTripper
	Logger logging.Logger
}

func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	next := a.Next
	if next == nil {
		next = http.DefaultTransport
	}

	if IsAuthEndpoint(req) {
		if req.Header.Get(AuthorizationHeader) == "" {
			return next.RoundTrip(req)
		}
		out := req.Clone(req.Context())
		out.Header.Del(AuthorizationHeader)
		return next.RoundTrip(out)
	}

	token, err := a.Store.Get(req.Context())
	if err != nil {
		if a.Logger != nil {
			a.Logger.Warn(req.Context(), "credential read failed, sending request without it",
				"path", req.URL.Path, "error", err)
		}
		return next.RoundTrip(req)
	}
	if token == "" {
		return next.RoundTrip(req)
	}

	out := req.Clone(req.Context())
	out.Header.Set(AuthorizationHeader, bearerPrefix+token)
	return next.RoundTrip(out)
}
