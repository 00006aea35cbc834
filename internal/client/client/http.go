package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/benayed0/loopa-pro/internal/client/credentials"
	"github.com/benayed0/loopa-pro/internal/client/models"
	"github.com/benayed0/loopa-pro/internal/logging"
)

const (
	PathRequestMagicLink = "/users/auth/request-magic-link"
	PathVerify           = "/users/auth/verify"
	PathCurrentUser      = "/users/me"

	maxBodySize = 4 << 20
)

// HTTPClient talks JSON to the backend through RequestID -> Authorizer -> base.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

type Option func(*httpOptions)

type httpOptions struct {
	timeout   time.Duration
	transport http.RoundTripper
}

// WithTimeout bounds each call, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(o *httpOptions) { o.timeout = d }
}

// WithTransport replaces the innermost transport (tests use httptest's).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *httpOptions) { o.transport = rt }
}

func NewHTTPClient(baseURL string, store credentials.Reader, logger logging.Logger, opts ...Option) (*HTTPClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", baseURL)
	}

	if logger == nil {
		logger = logging.Discard()
	}

	o := httpOptions{timeout: 10 * time.Second, transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	chain := &RequestID{Next: &Authorizer{Store: store, Next: o.transport, Logger: logger}}

	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Transport: chain, Timeout: o.timeout},
		logger:  logger,
	}, nil
}

func (c *HTTPClient) RequestMagicLink(ctx context.Context, email string) (*models.MagicLinkResponse, error) {
	var resp models.MagicLinkResponse
	err := c.call(ctx, http.MethodPost, PathRequestMagicLink, models.MagicLinkRequest{Email: email}, &resp, classifyLinkRequest)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) VerifyMagicToken(ctx context.Context, token string) (*models.VerifyResponse, error) {
	var resp models.VerifyResponse
	err := c.call(ctx, http.MethodPost, PathVerify, models.VerifyRequest{Token: token}, &resp, classifyRedeem)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: verify response carries no access token", ErrUnavailable)
	}
	return &resp, nil
}

func (c *HTTPClient) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.call(ctx, http.MethodGet, PathCurrentUser, nil, &user, classifyWhoAmI); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: profile response carries no user id", ErrUnavailable)
	}
	return &user, nil
}

func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any) error {
	return c.call(ctx, method, path, body, out, classifyGeneric)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) call(ctx context.Context, method, path string, body, out any, classify statusClassifier) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "backend call failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrUnavailable, method, path, err)
	}

	c.logger.Debug(ctx, "backend call", "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data), Err: classify(resp.StatusCode)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrUnavailable, method, path, err)
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// errorMessage pulls "message" out of an error body. The backend sends either
// a string or, for validation failures, a list of strings.
func errorMessage(data []byte) string {
	var body struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Message) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Message, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(body.Message, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}
