package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const MinPasswordLength = 6

var validate = validator.New()

type RegisterRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type ChangePasswordRequest struct {
	UserID          int64  `validate:"required,gt=0"`
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required"`
}

type CreatePostTypeRequest struct {
	Name        string `validate:"required"`
	Description *string
}

type UpdatePostTypeRequest struct {
	ID          int64  `validate:"required,gt=0"`
	Name        string `validate:"required"`
	Description *string
}

type CreatePostRequest struct {
	AuthorID   int64  `validate:"required,gt=0"`
	PostTypeID int64  `validate:"required,gt=0"`
	Title      string `validate:"required"`
	Content    string `validate:"required"`
}

type UpdatePostRequest struct {
	ID         int64  `validate:"required,gt=0"`
	ActorID    int64  `validate:"required,gt=0"`
	PostTypeID int64  `validate:"required,gt=0"`
	Title      string `validate:"required"`
	Content    string `validate:"required"`
}

type CreateCommentRequest struct {
	PostID   int64  `validate:"required,gt=0"`
	AuthorID int64  `validate:"required,gt=0"`
	Content  string `validate:"required"`
}

type UpdateCommentRequest struct {
	ID      int64  `validate:"required,gt=0"`
	ActorID int64  `validate:"required,gt=0"`
	Content string `validate:"required"`
}

func validateStruct(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// trimOptional returns nil for absent or blank values.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
