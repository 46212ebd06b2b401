// Package common defines shared constants and sentinel errors used across
// the server and the CLI client. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Authentication errors.
	ErrTokenMissing       = errors.New("no token, authorization denied")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrMissingSecret      = errors.New("signing secret is not configured")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")

	// Authorization errors.
	ErrNotAuthorized = errors.New("user not authorized")

	// Post-specific business rules.
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post has not yet been liked")
)

// Resources named in not-found errors.
const (
	ResourceUser       = "user"
	ResourceProfile    = "profile"
	ResourcePost       = "post"
	ResourceComment    = "comment"
	ResourceExperience = "experience"
	ResourceEducation  = "education"
)

// NotFoundError names the missing resource and matches ErrorNotFound.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Unwrap() error { return ErrorNotFound }

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ErrUploadsDisabled is returned when object storage is not configured.
var ErrUploadsDisabled = errors.New("avatar uploads are not configured")
