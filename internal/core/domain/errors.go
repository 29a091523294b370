package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrForbidden = errors.New("access forbidden")
var ErrUnauthenticated = errors.New("authentication required")
var ErrValidation = errors.New("validation failed")

var ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
var ErrPostNotFound = fmt.Errorf("post %w", ErrNotFound)

var ErrDuplicateEmail = errors.New("you've already signed up with that email, log in instead")
var ErrDuplicateTitle = errors.New("a post with that title already exists")

// ErrInvalidCredentials is the parent of both login failures. The two
// variants keep the distinct messages the login page has always shown.
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailNotFound = fmt.Errorf("%w: email does not exist, try again", ErrInvalidCredentials)
var ErrPasswordMismatch = fmt.Errorf("%w: password not matched, try again", ErrInvalidCredentials)

var ErrInvalidToken = fmt.Errorf("%w: invalid session token", ErrUnauthenticated)
var ErrTokenRevoked = fmt.Errorf("%w: session has been logged out", ErrUnauthenticated)
