package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/benayed0/loopa-pro/internal/devserver/auth"
	"github.com/benayed0/loopa-pro/internal/devserver/config"
	"github.com/benayed0/loopa-pro/internal/shared"
)

const magicTokenSize = 32

type digest [blake2b.Size256]byte

type pendingLink struct {
	userID    string
	expiresAt time.Time
}

// Grant is what a redeemed magic token turns into.
type Grant struct {
	AccessToken string
	User        *User
}

// Service issues single-use magic tokens and exchanges them for access
// tokens. Only blake2b digests of outstanding tokens are kept.
type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	linkValidityDuration        time.Duration
	now                         func() time.Time

	mu    sync.Mutex
	links map[digest]pendingLink
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		linkValidityDuration:        cfg.MagicLinkValidityDuration,
		now:                         time.Now,
		links:                       make(map[digest]pendingLink),
	}
}

// RequestMagicLink returns a fresh magic token for email. Unknown addresses
// are provisioned as the owner of a demo merchant.
func (s *Service) RequestMagicLink(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return "", fmt.Errorf("%w: email %v", shared.ErrorValidation, err)
	}

	user, err := s.findOrProvision(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := shared.MakeRandHexString(magicTokenSize)
	if err != nil {
		return "", fmt.Errorf("generate magic token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.links[blake2b.Sum256([]byte(token))] = pendingLink{
		userID:    user.ID,
		expiresAt: s.now().Add(s.linkValidityDuration),
	}

	return token, nil
}

// Redeem consumes token. A token works once: the second attempt gets
// shared.ErrorInvalidToken even if the first one failed on expiry.
func (s *Service) Redeem(ctx context.Context, token string) (*Grant, error) {
	token = strings.TrimSpace(token)
	if err := validation.Validate(token, validation.Required); err != nil {
		return nil, fmt.Errorf("%w: token %v", shared.ErrorValidation, err)
	}

	key := blake2b.Sum256([]byte(token))

	s.mu.Lock()
	link, ok := s.links[key]
	delete(s.links, key)
	s.mu.Unlock()

	if !ok {
		return nil, shared.ErrorInvalidToken
	}
	if !s.now().Before(link.expiresAt) {
		return nil, shared.ErrorTokenExpired
	}

	user, err := s.repo.GetUserByID(ctx, link.userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	accessToken, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	return &Grant{AccessToken: accessToken, User: user}, nil
}

// Authenticate resolves a bearer credential to its user.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*User, error) {
	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, shared.ErrorNotFound) {
		// signed by us before a restart wiped the users
		return nil, shared.ErrorInvalidToken
	}
	return user, err
}

func (s *Service) findOrProvision(ctx context.Context, email string) (*User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, shared.ErrorNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	user, err = s.repo.Create(ctx, &User{
		Email: email,
		Roles: []Role{RoleOwner},
		Merchants: []Merchant{{
			ID:      uuid.NewString(),
			Name:    "Loopa Demo",
			Address: "1 rue de la Démo, Tunis",
		}},
	})
	if errors.Is(err, shared.ErrorAlreadyExists) {
		return s.repo.GetUserByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

func (s *Service) sweepLocked() {
	now := s.now()
	for k, l := range s.links {
		if !now.Before(l.expiresAt) {
			delete(s.links, k)
		}
	}
}
