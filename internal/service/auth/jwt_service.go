package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Claims holds the validated contents of a bearer token.
type Claims struct {
	UserID    uuid.UUID
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// JWTService issues and validates the signed, time-limited bearer tokens
// used to authenticate API requests.
type JWTService interface {
	// GenerateToken creates a signed token encoding the user ID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken parses and verifies a token string and returns its
	// claims. Returns ErrExpiredToken for expired tokens and
	// ErrInvalidToken for malformed tokens or bad signatures; expiry is
	// checked on every call, so issued tokens cannot outlive their lifetime.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}
