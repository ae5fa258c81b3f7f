package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLoginDisabled      = errors.New("manager login is not configured")
	ErrInvalidToken       = errors.New("invalid token")
)
