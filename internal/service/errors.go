package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is; the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a listing is owned by a different user than the
	// one making the request. Only the owner may update or delete a listing.
	// API layer maps this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("listing is owned by another user")

	// ErrMissingFields indicates a create request without the required
	// title, description or price. API layer maps this to HTTP 400.
	ErrMissingFields = errors.New("title, description and price are required")

	// ErrStorageUnavailable indicates files were uploaded but no object
	// store is configured. API layer maps this to HTTP 400.
	ErrStorageUnavailable = errors.New("image storage is not configured")
)
