package store

import (
	"testing"
)

func TestListingFilterNormalize(t *testing.T) {
	// Zero values fall back to the defaults
	var filter ListingFilter
	filter.Normalize()

	if filter.Page != DefaultPage {
		t.Errorf("Expected page %d, got %d", DefaultPage, filter.Page)
	}
	if filter.Limit != DefaultLimit {
		t.Errorf("Expected limit %d, got %d", DefaultLimit, filter.Limit)
	}
	if filter.Sort != SortNewest {
		t.Errorf("Expected sort %s, got %s", SortNewest, filter.Sort)
	}

	// Negative values fall back too
	filter = ListingFilter{Page: -3, Limit: -1}
	filter.Normalize()
	if filter.Page != DefaultPage || filter.Limit != DefaultLimit {
		t.Errorf("Expected defaults, got page=%d limit=%d", filter.Page, filter.Limit)
	}

	// Valid values are kept
	filter = ListingFilter{Page: 4, Limit: 25, Sort: SortPriceLow}
	filter.Normalize()
	if filter.Page != 4 || filter.Limit != 25 || filter.Sort != SortPriceLow {
		t.Errorf("Expected values preserved, got page=%d limit=%d sort=%s",
			filter.Page, filter.Limit, filter.Sort)
	}
}

func TestListingFilterOffset(t *testing.T) {
	tests := []struct {
		page   int
		limit  int
		offset int
	}{
		{page: 1, limit: 10, offset: 0},
		{page: 2, limit: 10, offset: 10},
		{page: 3, limit: 25, offset: 50},
	}

	for _, tc := range tests {
		filter := ListingFilter{Page: tc.page, Limit: tc.limit}
		if got := filter.Offset(); got != tc.offset {
			t.Errorf("page=%d limit=%d: expected offset %d, got %d",
				tc.page, tc.limit, tc.offset, got)
		}
	}
}

func TestListingFilterTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		pages int
	}{
		{total: 0, limit: 10, pages: 0},
		{total: 1, limit: 10, pages: 1},
		{total: 10, limit: 10, pages: 1},
		{total: 11, limit: 10, pages: 2},
		{total: 95, limit: 10, pages: 10},
		{total: 5, limit: 0, pages: 0},
	}

	for _, tc := range tests {
		filter := ListingFilter{Limit: tc.limit}
		if got := filter.TotalPages(tc.total); got != tc.pages {
			t.Errorf("total=%d limit=%d: expected %d pages, got %d",
				tc.total, tc.limit, tc.pages, got)
		}
	}
}
