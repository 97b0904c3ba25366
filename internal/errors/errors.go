package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// NotFoundError represents an error when an entity is not found.
// Ownership failures are reported through the same error so that the
// existence of another user's private resources is never confirmed.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrUserNotFound           = &NotFoundError{Entity: "User"}
	ErrLinkNotFound           = &NotFoundError{Entity: "Link"}
	ErrCategoryNotFound       = &NotFoundError{Entity: "Category"}
	ErrCollectionNotFound     = &NotFoundError{Entity: "Collection"}
	ErrCollectionLinkNotFound = &NotFoundError{Entity: "Link in collection"}
)

// Conflict Errors
var (
	ErrEmailRegistered = errors.New("Email already registered")
	ErrCategoryExists  = errors.New("A category with this name already exists")

	ErrLinkAlreadyInCollection  = errors.New("This link is already in the collection")
	ErrLinksAlreadyInCollection = errors.New("Some links are already in the collection")
)

// Collection membership / visibility errors
var (
	ErrInvalidLinks        = errors.New("One or more links are invalid")
	ErrInvalidCategories   = errors.New("One or more categories are invalid")
	ErrPrivateLinkInPublic = errors.New("Private links cannot be added to public collections")
	ErrCloneSourcePrivate  = errors.New("Private collections cannot be cloned")
)

// Authentication Errors
var (
	ErrInvalidCredentials      = &AuthenticationError{Message: "Invalid credentials"}
	ErrTokenNotProvided        = &AuthenticationError{Message: "Token not provided"}
	ErrInvalidToken            = &AuthenticationError{Message: "Invalid token"}
	ErrTokenExpired            = &AuthenticationError{Message: "Token expired"}
	ErrRefreshTokenNotProvided = &AuthenticationError{Message: "Refresh token not provided"}
	ErrInvalidRefreshToken     = &AuthenticationError{Message: "Invalid refresh token"}
	ErrRefreshTokenExpired     = &AuthenticationError{Message: "Refresh token expired"}
)

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// NewValidationError creates a new ValidationError
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// FirstViolation reduces a validator/v10 error to its first violation,
// mirroring the API contract of returning a single message per request
func FirstViolation(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		v := verrs[0]
		switch v.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", v.Field())
		case "email":
			return "Invalid email"
		case "min":
			return fmt.Sprintf("%s must be at least %s characters", v.Field(), v.Param())
		case "max":
			return fmt.Sprintf("%s must be at most %s characters", v.Field(), v.Param())
		case "hexcolor":
			return "Invalid color format"
		}
		return fmt.Sprintf("%s is invalid", v.Field())
	}
	return err.Error()
}
