package shared

import "errors"

var (
	// repository errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// auth errors
	ErrorInvalidToken = errors.New("invalid token")
	ErrorTokenExpired = errors.New("token expired")

	ErrorValidation = errors.New("validation error")
)
