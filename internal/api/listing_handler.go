package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Atr004/StudentHub/internal/api/middleware"
	"github.com/Atr004/StudentHub/internal/api/shared"
	"github.com/Atr004/StudentHub/internal/domain"
	"github.com/Atr004/StudentHub/internal/platform/logger"
	"github.com/Atr004/StudentHub/internal/service"
	"github.com/Atr004/StudentHub/internal/store"
)

// CreateListingRequest defines the JSON payload for creating a listing.
// Price is a pointer so a missing price can be told apart from zero.
type CreateListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	Location    string   `json:"location"`
}

// UpdateListingRequest defines the JSON payload for updating a listing.
// Absent fields are left unchanged.
type UpdateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Condition   *string  `json:"condition"`
	Location    *string  `json:"location"`
}

// ListingHandler handles listing CRUD requests. Create, update and delete
// run behind the auth middleware; reads are public.
type ListingHandler struct {
	listingService service.ListingService
	logger         *slog.Logger
}

// NewListingHandler creates a new ListingHandler with the given dependencies.
func NewListingHandler(listingService service.ListingService, logger *slog.Logger) *ListingHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ListingHandler{
		listingService: listingService,
		logger:         logger.With(slog.String("component", "listing_handler")),
	}
}

// Create handles POST /api/listings.
// Accepts multipart/form-data (fields plus image file parts) or plain JSON.
// Responds 201 with the created listing.
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var (
		input service.CreateListingInput
		files []service.UploadedFile
	)

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		input = service.CreateListingInput{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Category:    domain.Category(r.FormValue("category")),
			Condition:   r.FormValue("condition"),
			Location:    r.FormValue("location"),
		}

		price, ok, err := formPrice(r)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Price must be a number")
			return
		}
		if ok {
			input.Price = &price
		}

		opened, closeFiles, err := openUploadedFiles(r)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Failed to read uploaded files", err)
			return
		}
		defer closeFiles()
		files = opened
	} else {
		var req CreateListingRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}

		input = service.CreateListingInput{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Category:    domain.Category(req.Category),
			Condition:   req.Condition,
			Location:    req.Location,
		}
	}

	listing, err := h.listingService.CreateListing(r.Context(), ownerID, input, files)
	if err != nil {
		status := MapErrorToStatusCode(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to create listing", "error", err, "owner_id", ownerID)
		}
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ListingResponse{
		Success: true,
		Listing: listing,
	})
}

// List handles GET /api/listings.
// Query parameters: search, category, minPrice, maxPrice, location, sort,
// page, limit. Responds 200 with the matching page and pagination metadata.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	filter, err := parseListingFilter(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.listingService.ListListings(r.Context(), filter)
	if err != nil {
		log.Error("failed to list listings", "error", err)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list listings", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListingsResponse{
		Success:     true,
		Total:       page.Total,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		Count:       len(page.Listings),
		Listings:    page.Listings,
	})
}

// GetByID handles GET /api/listings/{id}.
// Responds 200 with the listing, or 404 when it does not exist.
func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	listingID, err := parseListingID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	listing, err := h.listingService.GetListing(r.Context(), listingID)
	if err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Listing not found")
			return
		}
		log.Error("failed to get listing", "error", err, "listing_id", listingID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to get listing", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListingResponse{
		Success: true,
		Listing: listing,
	})
}

// Update handles PUT /api/listings/{id}.
// Only the owner may update; new image uploads replace the stored image
// list wholesale. Responds 200 with the updated listing.
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actorID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	listingID, err := parseListingID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	var (
		input service.UpdateListingInput
		files []service.UploadedFile
	)

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		input.Title = formField(r, "title")
		input.Description = formField(r, "description")
		input.Condition = formField(r, "condition")
		input.Location = formField(r, "location")

		if raw := formField(r, "category"); raw != nil {
			category := domain.Category(*raw)
			input.Category = &category
		}

		price, ok, err := formPrice(r)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Price must be a number")
			return
		}
		if ok {
			input.Price = &price
		}

		opened, closeFiles, err := openUploadedFiles(r)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Failed to read uploaded files", err)
			return
		}
		defer closeFiles()
		files = opened
	} else {
		var req UpdateListingRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}

		input.Title = req.Title
		input.Description = req.Description
		input.Price = req.Price
		input.Condition = req.Condition
		input.Location = req.Location
		if req.Category != nil {
			category := domain.Category(*req.Category)
			input.Category = &category
		}
	}

	listing, err := h.listingService.UpdateListing(r.Context(), listingID, actorID, input, files)
	if err != nil {
		status := MapErrorToStatusCode(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to update listing", "error", err, "listing_id", listingID)
		}
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListingResponse{
		Success: true,
		Listing: listing,
	})
}

// Delete handles DELETE /api/listings/{id}.
// Only the owner may delete. Responds 200 with an acknowledgement.
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actorID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	listingID, err := parseListingID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	if err := h.listingService.DeleteListing(r.Context(), listingID, actorID); err != nil {
		status := MapErrorToStatusCode(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to delete listing", "error", err, "listing_id", listingID)
		}
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Listing deleted",
	})
}

// parseListingID extracts and parses the {id} path parameter.
func parseListingID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// formField returns a pointer to the named form value, or nil when the
// field was not sent at all. An empty provided value clears the field.
func formField(r *http.Request, name string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// formPrice parses the price form field. The second return reports whether
// the field was present.
func formPrice(r *http.Request) (float64, bool, error) {
	raw := formField(r, "price")
	if raw == nil || *raw == "" {
		return 0, false, nil
	}
	price, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return 0, false, err
	}
	return price, true, nil
}
