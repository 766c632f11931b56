package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountDisabled       = errors.New("account is not activated")
	ErrAccountLocked         = errors.New("account is locked")
	ErrEmailAlreadyInUse     = errors.New("email already in use")
	ErrInvalidLifecycleToken = errors.New("invalid or expired token")
	ErrMalformedToken        = errors.New("malformed token")
	ErrAvatarNotFound        = errors.New("avatar not found")
)
