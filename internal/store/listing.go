package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/Atr004/StudentHub/internal/domain"
)

// Sort keys accepted by ListingFilter.Sort.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListingFilter describes the search, filter, sort and pagination
// parameters of a listing query. Zero values mean "not filtered".
type ListingFilter struct {
	// Search matches case-insensitively as a substring of title OR description.
	Search string

	// Category matches exactly when non-empty.
	Category domain.Category

	// MinPrice and MaxPrice are independent inclusive bounds.
	MinPrice *float64
	MaxPrice *float64

	// Location matches case-insensitively as a substring.
	Location string

	// Sort is one of the Sort* keys; empty means SortNewest.
	Sort string

	// Page and Limit control pagination; non-positive values fall back to
	// DefaultPage/DefaultLimit.
	Page  int
	Limit int
}

// Normalize replaces out-of-range pagination values with the defaults.
func (f *ListingFilter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Sort == "" {
		f.Sort = SortNewest
	}
}

// Offset returns the row offset for the current page: (page-1)*limit.
func (f *ListingFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// TotalPages returns ceil(total/limit) for the filter's page size.
func (f *ListingFilter) TotalPages(total int64) int {
	if f.Limit < 1 {
		return 0
	}
	return int((total + int64(f.Limit) - 1) / int64(f.Limit))
}

// ListingStore defines the interface for listing data persistence.
type ListingStore interface {
	// Create saves a new listing to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	// Returns validation errors from the domain Listing if data is invalid.
	Create(ctx context.Context, listing *domain.Listing) error

	// GetByID retrieves a listing by its unique ID with the owner's public
	// fields populated. Returns ErrListingNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)

	// List returns the page of listings matching the filter, with owners
	// populated, plus the total number of matches across all pages.
	List(ctx context.Context, filter ListingFilter) ([]*domain.Listing, int64, error)

	// Update replaces the mutable fields of an existing listing.
	// Returns ErrListingNotFound if the listing does not exist.
	Update(ctx context.Context, listing *domain.Listing) error

	// Delete removes a listing from the store by its ID.
	// Returns ErrListingNotFound if the listing does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
