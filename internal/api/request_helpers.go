package api

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/Atr004/StudentHub/internal/domain"
	"github.com/Atr004/StudentHub/internal/service"
	"github.com/Atr004/StudentHub/internal/store"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing;
// larger file parts spill to temporary files.
const maxUploadMemory = 32 << 20 // 32 MiB

// imagesFormField is the multipart field name carrying uploaded images.
const imagesFormField = "images"

// parsePagination reads the optional page/limit query parameters.
// Defaults are page=1, limit=10; both must be positive integers.
func parsePagination(r *http.Request) (page, limit int, err error) {
	page = store.DefaultPage
	limit = store.DefaultLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, fmt.Errorf("limit must be a positive integer")
		}
	}

	return page, limit, nil
}

// parseListingFilter reads the search/filter/sort/pagination query
// parameters of GET /api/listings into a store filter.
func parseListingFilter(r *http.Request) (store.ListingFilter, error) {
	query := r.URL.Query()

	filter := store.ListingFilter{
		Search:   query.Get("search"),
		Category: domain.Category(query.Get("category")),
		Location: query.Get("location"),
		Sort:     query.Get("sort"),
	}

	if raw := query.Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, fmt.Errorf("minPrice must be a number")
		}
		filter.MinPrice = &v
	}

	if raw := query.Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, fmt.Errorf("maxPrice must be a number")
		}
		filter.MaxPrice = &v
	}

	page, limit, err := parsePagination(r)
	if err != nil {
		return filter, err
	}
	filter.Page = page
	filter.Limit = limit

	return filter, nil
}

// isMultipart reports whether the request body is multipart/form-data.
func isMultipart(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "multipart/")
}

// openUploadedFiles opens the image file parts of a parsed multipart form.
// The returned closer must be called after the files have been consumed.
func openUploadedFiles(r *http.Request) ([]service.UploadedFile, func(), error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[imagesFormField]) == 0 {
		return nil, func() {}, nil
	}

	headers := r.MultipartForm.File[imagesFormField]
	files := make([]service.UploadedFile, 0, len(headers))
	var opened []interface{ Close() error }

	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open uploaded file %q: %w", header.Filename, err)
		}
		opened = append(opened, f)
		files = append(files, service.UploadedFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      f,
		})
	}

	return files, closeAll, nil
}
