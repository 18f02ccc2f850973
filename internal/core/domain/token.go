package domain

import "errors"

var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrMissingSigningSecret = errors.New("token signing secret is not configured")
)
