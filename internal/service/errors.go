package service

import "errors"

// Credential-verification failures share one message so callers cannot
// tell a missing account from a wrong password.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrConflict           = errors.New("username or email already registered")
	ErrForbidden          = errors.New("permission denied")
	ErrCorruptedAccount   = errors.New("user account corrupted, please contact support")
	ErrAlreadyLiked       = errors.New("tweet already liked")
	ErrNotLiked           = errors.New("tweet not liked")
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrNotFollowing       = errors.New("not following this user")
	ErrSelfFollow         = errors.New("cannot follow yourself")
)

// ValidationError carries the first failed registration check.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
