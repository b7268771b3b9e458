package domain

import "errors"

// Error taxonomy shared by all services. The API layer maps these to HTTP
// status codes in one place; the core never assumes a transport.
var (
	// ErrUnauthenticated covers every way a caller can fail to prove who it
	// is: unknown username, wrong password, missing/invalid/expired token.
	// The causes are deliberately indistinguishable to the caller so that
	// usernames cannot be enumerated.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden means the caller is authenticated but its role or
	// ownership does not permit the operation.
	ErrForbidden = errors.New("access forbidden")

	// ErrInvalidCredentials is returned only by the change-password flow
	// when the current password does not match. The caller is already
	// authenticated, so unlike ErrUnauthenticated this is a client error,
	// not an authentication failure.
	ErrInvalidCredentials = errors.New("current password is incorrect")

	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidRole   = errors.New("invalid role")

	ErrUserNotFound     = errors.New("user not found")
	ErrTemplateNotFound = errors.New("template not found")
)
