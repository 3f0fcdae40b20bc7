package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrNotFound           = errors.New("not found")
	ErrInternalError      = errors.New("internal error")
	ErrForbidden          = errors.New("forbidden")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPostTypeInUse      = errors.New("post type in use")

	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRequest, MinPasswordLength)
)

// PostTypeInUseError is returned when a post type still has posts referencing it.
type PostTypeInUseError struct {
	Count int64
}

func (e *PostTypeInUseError) Error() string {
	return fmt.Sprintf("post type referenced by %d posts", e.Count)
}

func (e *PostTypeInUseError) Is(target error) bool {
	return target == ErrPostTypeInUse
}
