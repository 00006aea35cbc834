package client

import (
	"net/http"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID stamps every outgoing request with a fresh id unless one is set.
type RequestID struct {
	Next http.RoundTripper
}

func (r *RequestID) RoundTrip(req *http.Request) (*http.Response, error) {
	next := r.Next
	if next == nil {
		next = http.DefaultTransport
	}
	if req.Header.Get(RequestIDHeader) != "" {
		return next.RoundTrip(req)
	}
	out := req.Clone(req.Context())
	out.Header.Set(RequestIDHeader, uuid.NewString())
	return next.RoundTrip(out)
}
