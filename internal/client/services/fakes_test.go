package services

import (
	"context"
	"errors"
	"sync"

	"github.com/benayed0/loopa-pro/internal/client/client"
	"github.com/benayed0/loopa-pro/internal/client/models"
)

// ---- fake client ----

// fakeClient implements client.Client for unit tests of the services.
type fakeClient struct {
	mu sync.Mutex

	LinkRet *models.MagicLinkResponse
	LinkErr error

	VerifyRet *models.VerifyResponse
	VerifyErr error

	MeRet *models.User
	MeErr error
	// MeGate, when set, blocks GetCurrentUser until closed.
	MeGate chan struct{}

	CloseErr error

	LinkCalls   []string
	VerifyCalls []string
	MeCalls     int
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) RequestMagicLink(ctx context.Context, email string) (*models.MagicLinkResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LinkCalls = append(f.LinkCalls, email)
	return f.LinkRet, f.LinkErr
}

func (f *fakeClient) VerifyMagicToken(ctx context.Context, token string) (*models.VerifyResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.VerifyCalls = append(f.VerifyCalls, token)
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) GetCurrentUser(ctx context.Context) (*models.User, error) {
	if f.MeGate != nil {
		<-f.MeGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MeCalls++
	return f.MeRet, f.MeErr
}

func (f *fakeClient) Do(ctx context.Context, method, path string, body, out any) error {
	return errors.New("not used")
}

func (f *fakeClient) Close() error { return f.CloseErr }

// ---- fake store ----

// fakeStore wraps a value and lets tests inject failures per operation.
type fakeStore struct {
	mu    sync.Mutex
	token string

	GetErr   error
	SetErr   error
	ClearErr error

	Clears int
}

func (s *fakeStore) Get(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.GetErr
}

func (s *fakeStore) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.token = token
	return nil
}

func (s *fakeStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Clears++
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.token = ""
	return nil
}

func (s *fakeStore) value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
