package services

import "errors"

// The original UI silently ignored operations on unknown users; here they
// fail loudly so callers can distinguish a bad id from a no-op.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailInUse         = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrCertificateMissing = errors.New("certificate not found")
	ErrInvalidSubmission  = errors.New("invalid submission")
)
