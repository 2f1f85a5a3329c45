package api

import (
	"errors"
	"net/http"

	"github.com/Atr004/StudentHub/internal/domain"
	"github.com/Atr004/StudentHub/internal/service"
	"github.com/Atr004/StudentHub/internal/service/auth"
	"github.com/Atr004/StudentHub/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors. Bad credentials are a 400 to match the
	// register/login contract; bad or expired tokens are a 401.
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Duplicate email on registration is a validation failure of the
	// request, not a conflict, per the API contract.
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusBadRequest

	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrStorageUnavailable),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrNotOwned):
		return "Not authorized"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrListingNotFound):
		return "Listing not found"

	case errors.Is(err, store.ErrEmailExists):
		return "User already exists"

	case errors.Is(err, service.ErrMissingFields):
		return "Title, description and price are required"

	case errors.Is(err, service.ErrStorageUnavailable):
		return "Image uploads are not available"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case isDomainValidationError(err):
		// Domain validation messages are written for users and safe to show.
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// isDomainValidationError reports whether err is one of the domain's
// field-validation sentinels.
func isDomainValidationError(err error) bool {
	validationErrors := []error{
		domain.ErrEmptyName,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyPassword,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
		domain.ErrEmptyTitle,
		domain.ErrEmptyDescription,
		domain.ErrNegativePrice,
		domain.ErrInvalidCategory,
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
