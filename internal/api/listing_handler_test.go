package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atr004/StudentHub/internal/api/shared"
	"github.com/Atr004/StudentHub/internal/domain"
	"github.com/Atr004/StudentHub/internal/mocks"
	"github.com/Atr004/StudentHub/internal/service"
	"github.com/Atr004/StudentHub/internal/store"
)

// listingTestEnv wires a handler to a real listing service backed by mocks.
type listingTestEnv struct {
	handler      *ListingHandler
	listingStore *mocks.MockListingStore
	imageStore   *mocks.MockImageStore
	router       chi.Router
}

func newListingTestEnv(t *testing.T) *listingTestEnv {
	t.Helper()

	listingStore := mocks.NewMockListingStore()
	imageStore := &mocks.MockImageStore{}
	svc, err := service.NewListingService(listingStore, imageStore, nil)
	require.NoError(t, err)

	handler := NewListingHandler(svc, nil)

	router := chi.NewRouter()
	router.Post("/api/listings", handler.Create)
	router.Get("/api/listings", handler.List)
	router.Get("/api/listings/{id}", handler.GetByID)
	router.Put("/api/listings/{id}", handler.Update)
	router.Delete("/api/listings/{id}", handler.Delete)

	return &listingTestEnv{
		handler:      handler,
		listingStore: listingStore,
		imageStore:   imageStore,
		router:       router,
	}
}

// asUser attaches an authenticated user ID the way the auth middleware does.
func asUser(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func seedListing(t *testing.T, env *listingTestEnv, ownerID uuid.UUID) *domain.Listing {
	t.Helper()
	listing, err := domain.NewListing(ownerID, "Calculus textbook", "Barely used", 25.50, domain.CategoryBooks)
	require.NoError(t, err)
	env.listingStore.Listings[listing.ID] = listing
	return listing
}

func TestCreateListingHandler(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()

	t.Run("creates listing from JSON", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)

		payload := map[string]interface{}{
			"title":       "Calculus textbook",
			"description": "Barely used",
			"price":       25.50,
			"category":    "books",
			"location":    "North campus",
		}
		payloadBytes, err := json.Marshal(payload)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/listings", bytes.NewBuffer(payloadBytes))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, asUser(req, ownerID))

		require.Equal(t, http.StatusCreated, recorder.Code)
		var resp ListingResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, ownerID, resp.Listing.OwnerID)
		assert.Equal(t, domain.CategoryBooks, resp.Listing.Category)
		assert.Contains(t, env.listingStore.Listings, resp.Listing.ID)
	})

	t.Run("creates listing from multipart form with images", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("title", "Lamp"))
		require.NoError(t, writer.WriteField("description", "Desk lamp"))
		require.NoError(t, writer.WriteField("price", "5"))
		part, err := writer.CreateFormFile("images", "photo.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest("POST", "/api/listings", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, asUser(req, ownerID))

		require.Equal(t, http.StatusCreated, recorder.Code)
		var resp ListingResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		require.Len(t, resp.Listing.Images, 1)
		assert.Equal(t, env.imageStore.Uploaded, resp.Listing.Images)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)

		payloadBytes, err := json.Marshal(map[string]interface{}{"title": "Lamp"})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/listings", bytes.NewBuffer(payloadBytes))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, asUser(req, ownerID))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var resp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.False(t, resp.Success)
	})

	t.Run("rejects unauthenticated request", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)

		payloadBytes, err := json.Marshal(map[string]interface{}{
			"title": "Lamp", "description": "Desk lamp", "price": 5,
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/listings", bytes.NewBuffer(payloadBytes))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestListListingsHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns page with metadata", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)
		env.listingStore.ListFn = func(ctx context.Context, filter store.ListingFilter) ([]*domain.Listing, int64, error) {
			assert.Equal(t, "calculus", filter.Search)
			assert.Equal(t, domain.CategoryBooks, filter.Category)
			require.NotNil(t, filter.MinPrice)
			assert.Equal(t, 10.0, *filter.MinPrice)
			assert.Equal(t, store.SortPriceLow, filter.Sort)
			assert.Equal(t, 2, filter.Page)

			listing, err := domain.NewListing(uuid.New(), "Calculus textbook", "Barely used", 25.50, domain.CategoryBooks)
			require.NoError(t, err)
			return []*domain.Listing{listing}, 11, nil
		}

		req := httptest.NewRequest("GET",
			"/api/listings?search=calculus&category=books&minPrice=10&sort=price_low&page=2", nil)
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var resp ListingsResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, int64(11), resp.Total)
		assert.Equal(t, 2, resp.TotalPages)
		assert.Equal(t, 2, resp.CurrentPage)
		assert.Equal(t, 1, resp.Count)
		assert.Len(t, resp.Listings, 1)
	})

	t.Run("rejects malformed price filter", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)

		req := httptest.NewRequest("GET", "/api/listings?minPrice=cheap", nil)
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects malformed pagination", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)

		req := httptest.NewRequest("GET", "/api/listings?limit=-1", nil)
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetListingHandler(t *testing.T) {
	t.Parallel()
	env := newListingTestEnv(t)
	listing := seedListing(t, env, uuid.New())

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{
			name:       "existing listing",
			path:       "/api/listings/" + listing.ID.String(),
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown listing",
			path:       "/api/listings/" + uuid.New().String(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed ID",
			path:       "/api/listings/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			recorder := httptest.NewRecorder()

			env.router.ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp ListingResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, listing.ID, resp.Listing.ID)
			}
		})
	}
}

func TestUpdateListingHandler(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()

	t.Run("owner updates fields", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)
		listing := seedListing(t, env, ownerID)

		payloadBytes, err := json.Marshal(map[string]interface{}{
			"title": "Calculus textbook (3rd ed)",
			"price": 20,
		})
		require.NoError(t, err)

		req := httptest.NewRequest("PUT", "/api/listings/"+listing.ID.String(), bytes.NewBuffer(payloadBytes))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, asUser(req, ownerID))

		require.Equal(t, http.StatusOK, recorder.Code)
		var resp ListingResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "Calculus textbook (3rd ed)", resp.Listing.Title)
		assert.Equal(t, 20.0, resp.Listing.Price)
		// Untouched fields survive
		assert.Equal(t, "Barely used", resp.Listing.Description)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)
		listing := seedListing(t, env, ownerID)

		payloadBytes, err := json.Marshal(map[string]interface{}{"title": "Hijacked"})
		require.NoError(t, err)

		req := httptest.NewRequest("PUT", "/api/listings/"+listing.ID.String(), bytes.NewBuffer(payloadBytes))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, asUser(req, uuid.New()))

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Equal(t, "Calculus textbook", env.listingStore.Listings[listing.ID].Title)
	})

	t.Run("unknown listing is not found", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)

		payloadBytes, err := json.Marshal(map[string]interface{}{"title": "Anything"})
		require.NoError(t, err)

		req := httptest.NewRequest("PUT", "/api/listings/"+uuid.New().String(), bytes.NewBuffer(payloadBytes))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, asUser(req, ownerID))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestDeleteListingHandler(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()

	t.Run("owner deletes listing", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)
		listing := seedListing(t, env, ownerID)

		req := httptest.NewRequest("DELETE", "/api/listings/"+listing.ID.String(), nil)
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, asUser(req, ownerID))

		require.Equal(t, http.StatusOK, recorder.Code)
		var resp MessageResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.NotContains(t, env.listingStore.Listings, listing.ID)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		env := newListingTestEnv(t)
		listing := seedListing(t, env, ownerID)

		req := httptest.NewRequest("DELETE", "/api/listings/"+listing.ID.String(), nil)
		recorder := httptest.NewRecorder()

		env.router.ServeHTTP(recorder, asUser(req, uuid.New()))

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Contains(t, env.listingStore.Listings, listing.ID)
	})
}
