package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common listing validation errors
var (
	ErrEmptyListingID   = errors.New("listing ID cannot be empty")
	ErrEmptyOwnerID     = errors.New("listing owner cannot be empty")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrInvalidCategory  = errors.New("invalid listing category")
)

// Category classifies a listing into one of a fixed set of values.
type Category string

// Valid listing categories. CategoryOthers is the default when a listing
// is created without an explicit category.
const (
	CategoryBooks        Category = "books"
	CategoryNotes        Category = "notes"
	CategoryLabMaterials Category = "lab materials"
	CategoryOthers       Category = "others"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryBooks, CategoryNotes, CategoryLabMaterials, CategoryOthers:
		return true
	}
	return false
}

// OwnerInfo is the public subset of the owning user attached to a listing
// when it is read back with its owner populated.
type OwnerInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Listing represents a marketplace item owned by exactly one user.
// Images holds object-store keys for uploaded photos, in upload order.
type Listing struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Category    Category   `json:"category"`
	Condition   string     `json:"condition,omitempty"`
	Location    string     `json:"location,omitempty"`
	Images      []string   `json:"images"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Owner       *OwnerInfo `json:"owner,omitempty"`
}

// NewListing creates a new Listing owned by ownerID.
// An empty category defaults to CategoryOthers and a nil image list is
// normalized to an empty slice. Returns an error if validation fails.
func NewListing(
	ownerID uuid.UUID,
	title, description string,
	price float64,
	category Category,
) (*Listing, error) {
	if category == "" {
		category = CategoryOthers
	}

	listing := &Listing{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Price:       price,
		Category:    category,
		Images:      []string{},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := listing.Validate(); err != nil {
		return nil, err
	}

	return listing, nil
}

// Validate checks if the Listing has valid data.
// Returns an error if any field fails validation.
func (l *Listing) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyListingID
	}

	if l.OwnerID == uuid.Nil {
		return ErrEmptyOwnerID
	}

	if l.Title == "" {
		return ErrEmptyTitle
	}

	if l.Description == "" {
		return ErrEmptyDescription
	}

	if l.Price < 0 {
		return ErrNegativePrice
	}

	if !ValidCategory(l.Category) {
		return ErrInvalidCategory
	}

	return nil
}

// IsOwnedBy reports whether the listing belongs to the given user.
// Only the owner may update or delete a listing.
func (l *Listing) IsOwnedBy(userID uuid.UUID) bool {
	return l.OwnerID == userID
}
