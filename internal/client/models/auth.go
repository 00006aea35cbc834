package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// MagicLinkRequest is the body of POST /users/auth/request-magic-link.
type MagicLinkRequest struct {
	Email string `json:"email"`
}

// Validate only checks presence. The backend decides what a valid email is.
func (r MagicLinkRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
	)
}

// MagicLinkResponse is returned after a link was issued. MagicToken is only
// filled by backends running in debug mode.
type MagicLinkResponse struct {
	Message    string `json:"message"`
	MagicToken string `json:"magicToken,omitempty"`
}

// VerifyRequest is the body of POST /users/auth/verify.
type VerifyRequest struct {
	Token string `json:"token"`
}

func (r VerifyRequest) Validate() error {
	r.Token = strings.TrimSpace(r.Token)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
	)
}

// VerifyResponse carries the bearer credential minted for a redeemed link.
type VerifyResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}
