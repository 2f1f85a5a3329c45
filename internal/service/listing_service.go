package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/Atr004/StudentHub/internal/domain"
	"github.com/Atr004/StudentHub/internal/platform/logger"
	"github.com/Atr004/StudentHub/internal/store"
)

// ImageStore is the object-store surface the listing service needs for
// uploaded images. Implemented by objectstore.Client.
type ImageStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// UploadedFile is one file part of a multipart create/update request.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CreateListingInput carries the fields of a create request. Price is a
// pointer so a missing price can be told apart from a free listing.
type CreateListingInput struct {
	Title       string
	Description string
	Price       *float64
	Category    domain.Category
	Condition   string
	Location    string
}

// UpdateListingInput carries the fields of an update request. Nil fields
// are left unchanged; provided fields replace the stored values.
type UpdateListingInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *domain.Category
	Condition   *string
	Location    *string
}

// ListingPage is one page of listing results plus pagination metadata.
type ListingPage struct {
	Listings    []*domain.Listing
	Total       int64
	TotalPages  int
	CurrentPage int
}

// ListingService provides listing CRUD operations with ownership
// enforcement and search/filter/sort/pagination.
type ListingService interface {
	// CreateListing validates the input, stores any uploaded images and
	// persists a new listing owned by ownerID.
	// Returns ErrMissingFields if title, description or price is missing.
	CreateListing(ctx context.Context, ownerID uuid.UUID, input CreateListingInput, files []UploadedFile) (*domain.Listing, error)

	// ListListings returns the page of listings matching the filter.
	ListListings(ctx context.Context, filter store.ListingFilter) (*ListingPage, error)

	// GetListing retrieves a single listing with its owner populated.
	// Returns store.ErrListingNotFound if it does not exist.
	GetListing(ctx context.Context, id uuid.UUID) (*domain.Listing, error)

	// UpdateListing replaces any provided fields of the listing. When new
	// files are uploaded the image list is replaced wholesale.
	// Returns store.ErrListingNotFound if the listing does not exist and
	// ErrNotOwned if actorID is not the owner.
	UpdateListing(ctx context.Context, id, actorID uuid.UUID, input UpdateListingInput, files []UploadedFile) (*domain.Listing, error)

	// DeleteListing removes the listing and its stored images.
	// Same not-found/ownership errors as UpdateListing.
	DeleteListing(ctx context.Context, id, actorID uuid.UUID) error
}

// listingServiceImpl implements the ListingService interface
type listingServiceImpl struct {
	listingStore store.ListingStore
	imageStore   ImageStore
	logger       *slog.Logger
}

// NewListingService creates a new ListingService. imageStore may be nil
// when no object store is configured; uploads are then rejected with
// ErrStorageUnavailable.
func NewListingService(
	listingStore store.ListingStore,
	imageStore ImageStore,
	logger *slog.Logger,
) (ListingService, error) {
	if listingStore == nil {
		return nil, fmt.Errorf("listingStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &listingServiceImpl{
		listingStore: listingStore,
		imageStore:   imageStore,
		logger:       logger.With(slog.String("component", "listing_service")),
	}, nil
}

// CreateListing implements ListingService.CreateListing
func (s *listingServiceImpl) CreateListing(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateListingInput,
	files []UploadedFile,
) (*domain.Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.Title == "" || input.Description == "" || input.Price == nil {
		return nil, ErrMissingFields
	}

	listing, err := domain.NewListing(ownerID, input.Title, input.Description, *input.Price, input.Category)
	if err != nil {
		return nil, err
	}
	listing.Condition = input.Condition
	listing.Location = input.Location

	images, err := s.storeImages(ctx, files)
	if err != nil {
		return nil, err
	}
	listing.Images = images

	if err := s.listingStore.Create(ctx, listing); err != nil {
		// The listing row failed; don't leave orphaned objects behind.
		s.removeImages(ctx, images)
		return nil, err
	}

	log.Info("listing created",
		slog.String("listing_id", listing.ID.String()),
		slog.String("owner_id", ownerID.String()),
		slog.Int("image_count", len(images)))
	return listing, nil
}

// ListListings implements ListingService.ListListings
func (s *listingServiceImpl) ListListings(
	ctx context.Context,
	filter store.ListingFilter,
) (*ListingPage, error) {
	filter.Normalize()

	listings, total, err := s.listingStore.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListingPage{
		Listings:    listings,
		Total:       total,
		TotalPages:  filter.TotalPages(total),
		CurrentPage: filter.Page,
	}, nil
}

// GetListing implements ListingService.GetListing
func (s *listingServiceImpl) GetListing(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	return s.listingStore.GetByID(ctx, id)
}

// UpdateListing implements ListingService.UpdateListing
func (s *listingServiceImpl) UpdateListing(
	ctx context.Context,
	id, actorID uuid.UUID,
	input UpdateListingInput,
	files []UploadedFile,
) (*domain.Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	listing, err := s.listingStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !listing.IsOwnedBy(actorID) {
		log.Warn("update rejected: actor is not the owner",
			slog.String("listing_id", id.String()),
			slog.String("actor_id", actorID.String()))
		return nil, ErrNotOwned
	}

	if input.Title != nil {
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Price != nil {
		listing.Price = *input.Price
	}
	if input.Category != nil {
		listing.Category = *input.Category
	}
	if input.Condition != nil {
		listing.Condition = *input.Condition
	}
	if input.Location != nil {
		listing.Location = *input.Location
	}

	// New uploads replace the image list wholesale; there is no merge.
	var oldImages []string
	if len(files) > 0 {
		images, err := s.storeImages(ctx, files)
		if err != nil {
			return nil, err
		}
		oldImages = listing.Images
		listing.Images = images
	}

	listing.UpdatedAt = time.Now().UTC()

	if err := s.listingStore.Update(ctx, listing); err != nil {
		if len(files) > 0 {
			// The row update failed; drop the fresh uploads.
			s.removeImages(ctx, listing.Images)
		}
		return nil, err
	}

	s.removeImages(ctx, oldImages)

	log.Info("listing updated",
		slog.String("listing_id", id.String()),
		slog.String("actor_id", actorID.String()))
	return listing, nil
}

// DeleteListing implements ListingService.DeleteListing
func (s *listingServiceImpl) DeleteListing(ctx context.Context, id, actorID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	listing, err := s.listingStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !listing.IsOwnedBy(actorID) {
		log.Warn("delete rejected: actor is not the owner",
			slog.String("listing_id", id.String()),
			slog.String("actor_id", actorID.String()))
		return ErrNotOwned
	}

	if err := s.listingStore.Delete(ctx, id); err != nil {
		return err
	}

	s.removeImages(ctx, listing.Images)

	log.Info("listing deleted",
		slog.String("listing_id", id.String()),
		slog.String("actor_id", actorID.String()))
	return nil
}

// storeImages uploads each file under a fresh object key and returns the
// keys in upload order.
func (s *listingServiceImpl) storeImages(ctx context.Context, files []UploadedFile) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	if s.imageStore == nil {
		return nil, ErrStorageUnavailable
	}

	keys := make([]string, 0, len(files))
	for _, file := range files {
		key := "listings/" + uuid.New().String() + path.Ext(file.Filename)
		if err := s.imageStore.Upload(ctx, key, file.Reader, file.Size, file.ContentType); err != nil {
			// Roll back what already made it up.
			s.removeImages(ctx, keys)
			return nil, fmt.Errorf("failed to store image %q: %w", file.Filename, err)
		}
		keys = append(keys, key)
	}

	return keys, nil
}

// removeImages deletes stored objects best-effort; a failed delete only
// leaves an orphaned object, so it is logged and not propagated.
func (s *listingServiceImpl) removeImages(ctx context.Context, keys []string) {
	if s.imageStore == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	for _, key := range keys {
		// Objects removed out of band are skipped, not treated as failures.
		if exists, err := s.imageStore.Exists(ctx, key); err == nil && !exists {
			log.Debug("stored image already gone", slog.String("key", key))
			continue
		}
		if err := s.imageStore.Delete(ctx, key); err != nil {
			log.Warn("failed to delete stored image",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}
}
