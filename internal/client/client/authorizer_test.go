package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benayed0/loopa-pro/internal/client/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport captures the request that reached the wire.
type recordingTransport struct {
	got *http.Request
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.got = req
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
}

type failingStore struct{}

func (failingStore) Get(context.Context) (string, error) { return "", errors.New("disk gone") }

func newReq(t *testing.T, url string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.RequestURI = ""
	return req
}

func TestAuthorizer_AttachesBearerOutsideAuthEndpoints(t *testing.T) {
	paths := []string{"/users/me", "/merchant", "/menu/1/category/2", "/users", "/users/authx", "/qrcode/table/1/image"}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			rec := &recordingTransport{}
			a := &Authorizer{Store: credentials.NewMemoryStore("abc"), Next: rec}

			req := newReq(t, "http://api.test"+p)
			_, err := a.RoundTrip(req)
			require.NoError(t, err)

			assert.Equal(t, "Bearer abc", rec.got.Header.Get(AuthorizationHeader))
			assert.Empty(t, req.Header.Get(AuthorizationHeader), "original request must stay untouched")
			assert.NotSame(t, req, rec.got)
		})
	}
}

func TestAuthorizer_NoCredentialNoHeader(t *testing.T) {
	rec := &recordingTransport{}
	a := &Authorizer{Store: credentials.NewMemoryStore(""), Next: rec}

	req := newReq(t, "http://api.test/users/me")
	_, err := a.RoundTrip(req)
	require.NoError(t, err)

	assert.Empty(t, rec.got.Header.Get(AuthorizationHeader))
	assert.Same(t, req, rec.got)
}

func TestAuthorizer_NeverAttachesToAuthEndpoints(t *testing.T) {
	for _, p := range []string{PathRequestMagicLink, PathVerify, "/api/users/auth/anything"} {
		t.Run(p, func(t *testing.T) {
			rec := &recordingTransport{}
			a := &Authorizer{Store: credentials.NewMemoryStore("abc"), Next: rec}

			_, err := a.RoundTrip(newReq(t, "http://api.test"+p))
			require.NoError(t, err)
			assert.Empty(t, rec.got.Header.Get(AuthorizationHeader))
		})
	}
}

func TestAuthorizer_StripsCallerHeaderOnAuthEndpoints(t *testing.T) {
	rec := &recordingTransport{}
	a := &Authorizer{Store: credentials.NewMemoryStore("abc"), Next: rec}

	req := newReq(t, "http://api.test"+PathVerify)
	req.Header.Set(AuthorizationHeader, "Bearer leaked")

	_, err := a.RoundTrip(req)
	require.NoError(t, err)

	assert.Empty(t, rec.got.Header.Get(AuthorizationHeader))
	assert.Equal(t, "Bearer leaked", req.Header.Get(AuthorizationHeader))
}

func TestAuthorizer_StoreErrorForwardsUnchanged(t *testing.T) {
	rec := &recordingTransport{}
	a := &Authorizer{Store: failingStore{}, Next: rec}

	req := newReq(t, "http://api.test/users/me")
	_, err := a.RoundTrip(req)
	require.NoError(t, err)

	assert.Same(t, req, rec.got)
	assert.Empty(t, rec.got.Header.Get(AuthorizationHeader))
}

func TestAuthorizer_ReadsStoreOnEveryRequest(t *testing.T) {
	rec := &recordingTransport{}
	store := credentials.NewMemoryStore("first")
	a := &Authorizer{Store: store, Next: rec}

	_, _ = a.RoundTrip(newReq(t, "http://api.test/order"))
	assert.Equal(t, "Bearer first", rec.got.Header.Get(AuthorizationHeader))

	require.NoError(t, store.Set(context.Background(), "second"))
	_, _ = a.RoundTrip(newReq(t, "http://api.test/order"))
	assert.Equal(t, "Bearer second", rec.got.Header.Get(AuthorizationHeader))

	require.NoError(t, store.Clear(context.Background()))
	_, _ = a.RoundTrip(newReq(t, "http://api.test/order"))
	assert.Empty(t, rec.got.Header.Get(AuthorizationHeader))
}

func TestRequestID_StampsOnlyWhenMissing(t *testing.T) {
	rec := &recordingTransport{}
	r := &RequestID{Next: rec}

	req := newReq(t, "http://api.test/users/me")
	_, err := r.RoundTrip(req)
	require.NoError(t, err)
	assert.Len(t, rec.got.Header.Get(RequestIDHeader), 36)
	assert.Empty(t, req.Header.Get(RequestIDHeader))

	req = newReq(t, "http://api.test/users/me")
	req.Header.Set(RequestIDHeader, "fixed")
	_, err = r.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "fixed", rec.got.Header.Get(RequestIDHeader))
}
