package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/Atr004/StudentHub/internal/domain"
)

// Common request/response structures. Every success body carries
// success:true; failures are shaped by shared.ErrorResponse.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public view of a user. The password hash is never
// part of any response.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse builds the public view of a user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// RegisterResponse defines the successful response for registration.
type RegisterResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// LoginResponse defines the successful response for login.
type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ProfileResponse wraps a single user.
type ProfileResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// UsersResponse wraps a page of users.
type UsersResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
}

// ListingResponse wraps a single listing.
type ListingResponse struct {
	Success bool            `json:"success"`
	Listing *domain.Listing `json:"listing"`
}

// ListingsResponse wraps a page of listings plus pagination metadata.
type ListingsResponse struct {
	Success     bool              `json:"success"`
	Total       int64             `json:"total"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
	Count       int               `json:"count"`
	Listings    []*domain.Listing `json:"listings"`
}

// MessageResponse is a bare success acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
