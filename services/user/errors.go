package user

import "errors"

// Expected, user-facing failures. Handlers map these to HTTP statuses.
var (
	ErrEmailTaken         = errors.New("email is already in use")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)
