package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Atr004/StudentHub/internal/domain"
	"github.com/Atr004/StudentHub/internal/platform/logger"
	"github.com/Atr004/StudentHub/internal/store"
)

// listingColumns are the listing fields selected by every read, joined with
// the owner's public fields from users.
const listingColumns = `
	l.id, l.owner_id, l.title, l.description, l.price, l.category,
	l.condition, l.location, l.images, l.created_at, l.updated_at,
	u.name, u.email
`

// PostgresListingStore implements the store.ListingStore interface
// using a PostgreSQL database as the storage backend. Listing images are
// stored as a jsonb array of object-store keys.
type PostgresListingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresListingStore implements store.ListingStore interface
var _ store.ListingStore = (*PostgresListingStore)(nil)

// NewPostgresListingStore creates a new PostgreSQL implementation of the
// ListingStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresListingStore(db store.DBTX, logger *slog.Logger) *PostgresListingStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresListingStore{
		db:     db,
		logger: logger.With(slog.String("component", "listing_store")),
	}
}

// Create implements store.ListingStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist
// (foreign key violation).
func (s *PostgresListingStore) Create(ctx context.Context, listing *domain.Listing) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := listing.Validate(); err != nil {
		log.Warn("listing validation failed during create",
			slog.String("error", err.Error()),
			slog.String("listing_id", listing.ID.String()))
		return err
	}

	images, err := marshalImages(listing.Images)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO listings
			(id, owner_id, title, description, price, category, condition,
			 location, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		listing.ID,
		listing.OwnerID,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Category,
		listing.Condition,
		listing.Location,
		images,
		listing.CreatedAt,
		listing.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during listing creation",
				slog.String("listing_id", listing.ID.String()),
				slog.String("owner_id", listing.OwnerID.String()))
			return fmt.Errorf("%w: owner with ID %s not found",
				store.ErrInvalidEntity, listing.OwnerID)
		}

		log.Error("failed to create listing",
			slog.String("error", err.Error()),
			slog.String("listing_id", listing.ID.String()))
		return MapError(err)
	}

	log.Info("listing created successfully",
		slog.String("listing_id", listing.ID.String()),
		slog.String("owner_id", listing.OwnerID.String()),
		slog.String("category", string(listing.Category)))
	return nil
}

// GetByID implements store.ListingStore.GetByID
// It retrieves a listing with its owner's public fields populated.
// Returns store.ErrListingNotFound if the listing does not exist.
func (s *PostgresListingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + listingColumns + `
		FROM listings l
		JOIN users u ON u.id = l.owner_id
		WHERE l.id = $1
	`

	listing, err := scanListing(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("listing not found", slog.String("listing_id", id.String()))
			return nil, store.ErrListingNotFound
		}
		log.Error("failed to get listing by ID",
			slog.String("error", err.Error()),
			slog.String("listing_id", id.String()))
		return nil, MapError(err)
	}

	return listing, nil
}

// List implements store.ListingStore.List
// It builds a single WHERE clause from the filter, counts the total matches
// and returns the requested page ordered by the filter's sort key.
func (s *PostgresListingStore) List(
	ctx context.Context,
	filter store.ListingFilter,
) ([]*domain.Listing, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	filter.Normalize()

	where, args := buildListingWhere(filter)

	countQuery := `SELECT COUNT(*) FROM listings l` + where
	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count listings", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	query := `
		SELECT ` + listingColumns + `
		FROM listings l
		JOIN users u ON u.id = l.owner_id` + where + `
		ORDER BY ` + orderClause(filter.Sort) + `
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query listings", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var listings []*domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			log.Error("failed to scan listing row", slog.String("error", err.Error()))
			return nil, 0, err
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, 0, err
	}

	if listings == nil {
		listings = []*domain.Listing{}
	}

	log.Debug("listed listings",
		slog.Int("count", len(listings)),
		slog.Int64("total", total),
		slog.Int("page", filter.Page))
	return listings, total, nil
}

// Update implements store.ListingStore.Update
// It replaces every mutable field of the listing row.
// Returns store.ErrListingNotFound if the listing does not exist.
func (s *PostgresListingStore) Update(ctx context.Context, listing *domain.Listing) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := listing.Validate(); err != nil {
		log.Warn("listing validation failed during update",
			slog.String("error", err.Error()),
			slog.String("listing_id", listing.ID.String()))
		return err
	}

	images, err := marshalImages(listing.Images)
	if err != nil {
		return err
	}

	query := `
		UPDATE listings
		SET title = $1, description = $2, price = $3, category = $4,
			condition = $5, location = $6, images = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Category,
		listing.Condition,
		listing.Location,
		images,
		listing.UpdatedAt,
		listing.ID,
	)

	if err != nil {
		log.Error("failed to update listing",
			slog.String("error", err.Error()),
			slog.String("listing_id", listing.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrListingNotFound); err != nil {
		log.Debug("listing not found for update",
			slog.String("listing_id", listing.ID.String()))
		return err
	}

	log.Info("listing updated successfully",
		slog.String("listing_id", listing.ID.String()))
	return nil
}

// Delete implements store.ListingStore.Delete
// Returns store.ErrListingNotFound if the listing does not exist.
func (s *PostgresListingStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete listing",
			slog.String("error", err.Error()),
			slog.String("listing_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrListingNotFound); err != nil {
		log.Debug("listing not found for delete",
			slog.String("listing_id", id.String()))
		return err
	}

	log.Info("listing deleted successfully",
		slog.String("listing_id", id.String()))
	return nil
}

// buildListingWhere turns the filter into a WHERE clause with positional
// arguments. Price bounds are inclusive and applied independently; search
// and location match case-insensitively as substrings.
func buildListingWhere(filter store.ListingFilter) (string, []any) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conditions = append(conditions,
			fmt.Sprintf("(l.title ILIKE %s OR l.description ILIKE %s)", p, p))
	}

	if filter.Category != "" {
		conditions = append(conditions, "l.category = "+arg(string(filter.Category)))
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, "l.price >= "+arg(*filter.MinPrice))
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, "l.price <= "+arg(*filter.MaxPrice))
	}

	if filter.Location != "" {
		conditions = append(conditions, "l.location ILIKE "+arg("%"+filter.Location+"%"))
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause maps a sort key to its ORDER BY expression.
// Newest-first is the default for unknown keys.
func orderClause(sort string) string {
	switch sort {
	case store.SortOldest:
		return "l.created_at ASC"
	case store.SortPriceLow:
		return "l.price ASC, l.created_at DESC"
	case store.SortPriceHigh:
		return "l.price DESC, l.created_at DESC"
	default:
		return "l.created_at DESC"
	}
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanListing reads one joined listing row including the owner columns.
func scanListing(row rowScanner) (*domain.Listing, error) {
	var listing domain.Listing
	var owner domain.OwnerInfo
	var category string
	var images []byte

	err := row.Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.Title,
		&listing.Description,
		&listing.Price,
		&category,
		&listing.Condition,
		&listing.Location,
		&images,
		&listing.CreatedAt,
		&listing.UpdatedAt,
		&owner.Name,
		&owner.Email,
	)
	if err != nil {
		return nil, err
	}

	listing.Category = domain.Category(category)

	if err := json.Unmarshal(images, &listing.Images); err != nil {
		return nil, fmt.Errorf("failed to decode listing images: %w", err)
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}

	owner.ID = listing.OwnerID
	listing.Owner = &owner

	return &listing, nil
}

// marshalImages encodes the image key list for the jsonb column.
// A nil slice is stored as an empty array.
func marshalImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode listing images: %w", err)
	}
	return data, nil
}
