package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/benayed0/loopa-pro/internal/client/client"
	"github.com/stretchr/testify/assert"
)

func TestLinkErrorMessage(t *testing.T) {
	assert.Equal(t, MsgEmailRequired, LinkErrorMessage(fmt.Errorf("%w: email: cannot be blank", client.ErrValidation)))
	assert.Equal(t, "email must be an email",
		LinkErrorMessage(&client.APIError{Status: 400, Message: "email must be an email", Err: client.ErrRejected}))
	assert.Equal(t, MsgGenericFailure, LinkErrorMessage(client.ErrUnavailable))
	assert.Equal(t, MsgGenericFailure, LinkErrorMessage(errors.New("x")))
}

func TestVerifyErrorMessage(t *testing.T) {
	assert.Equal(t, MsgMissingToken, VerifyErrorMessage(client.ErrValidation))
	assert.Equal(t, MsgInvalidLink, VerifyErrorMessage(fmt.Errorf("verify: %w", client.ErrInvalidToken)))
	assert.Equal(t, MsgVerifyFailed, VerifyErrorMessage(client.ErrUnavailable))
}

func TestCallErrorMessage(t *testing.T) {
	assert.Equal(t, MsgSessionRefused, CallErrorMessage(&client.APIError{Status: 401, Err: client.ErrUnauthorized}))
	assert.Equal(t, "Merchant not found", CallErrorMessage(&client.APIError{Status: 404, Message: "Merchant not found", Err: client.ErrRejected}))
	assert.Equal(t, MsgLoadFailed, CallErrorMessage(client.ErrUnavailable))
}
