package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/Atr004/StudentHub/internal/domain"
	"github.com/Atr004/StudentHub/internal/store"
)

// MockListingStore implements store.ListingStore for testing
type MockListingStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, listing *domain.Listing) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	ListFn    func(ctx context.Context, filter store.ListingFilter) ([]*domain.Listing, int64, error)
	UpdateFn  func(ctx context.Context, listing *domain.Listing) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Listings    map[uuid.UUID]*domain.Listing
	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockListingStore creates a new mock store with initialized defaults
func NewMockListingStore() *MockListingStore {
	return &MockListingStore{
		Listings: make(map[uuid.UUID]*domain.Listing),
	}
}

// Create implements the store.ListingStore interface
func (m *MockListingStore) Create(ctx context.Context, listing *domain.Listing) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, listing)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Listings[listing.ID] = listing
	return nil
}

// GetByID implements the store.ListingStore interface
func (m *MockListingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	listing, exists := m.Listings[id]
	if !exists {
		return nil, store.ErrListingNotFound
	}
	return listing, nil
}

// List implements the store.ListingStore interface. The default
// implementation returns every stored listing unfiltered; tests that care
// about filtering set ListFn.
func (m *MockListingStore) List(
	ctx context.Context,
	filter store.ListingFilter,
) ([]*domain.Listing, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	listings := make([]*domain.Listing, 0, len(m.Listings))
	for _, listing := range m.Listings {
		listings = append(listings, listing)
	}
	return listings, int64(len(listings)), nil
}

// Update implements the store.ListingStore interface
func (m *MockListingStore) Update(ctx context.Context, listing *domain.Listing) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, listing)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	if _, exists := m.Listings[listing.ID]; !exists {
		return store.ErrListingNotFound
	}
	m.Listings[listing.ID] = listing
	return nil
}

// Delete implements the store.ListingStore interface
func (m *MockListingStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.DeleteError != nil {
		return m.DeleteError
	}

	if _, exists := m.Listings[id]; !exists {
		return store.ErrListingNotFound
	}
	delete(m.Listings, id)
	return nil
}
