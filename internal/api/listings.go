package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"staynest/internal/models"
)

// ListingsService wraps the listing endpoints.
type ListingsService struct {
	client *Client
}

// Search issues a filtered listing search. Zero-valued filters are left
// out of the query entirely.
func (s *ListingsService) Search(ctx context.Context, filters models.SearchFilters) ([]models.Listing, error) {
	q := url.Values{}
	if filters.City != "" {
		q.Set("city", filters.City)
	}
	if !filters.CheckIn.IsZero() {
		q.Set("check_in", filters.CheckIn.Format(time.DateOnly))
	}
	if !filters.CheckOut.IsZero() {
		q.Set("check_out", filters.CheckOut.Format(time.DateOnly))
	}
	if filters.Guests > 0 {
		q.Set("guests", strconv.Itoa(filters.Guests))
	}
	if filters.MinPrice > 0 {
		q.Set("min_price", strconv.FormatInt(filters.MinPrice, 10))
	}
	if filters.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatInt(filters.MaxPrice, 10))
	}
	if filters.Page > 0 {
		q.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(filters.PageSize))
	}

	path := "/listings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var listings []models.Listing
	if err := s.client.get(ctx, path, "listings", &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *ListingsService) Get(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	if err := s.client.get(ctx, "/listings/"+escape(id), "listings", &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *ListingsService) Create(ctx context.Context, req models.UpsertListingRequest) (*models.Listing, error) {
	var listing models.Listing
	if err := s.client.post(ctx, "/listings", "listings", req, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *ListingsService) Update(ctx context.Context, id string, req models.UpsertListingRequest) (*models.Listing, error) {
	var listing models.Listing
	if err := s.client.put(ctx, "/listings/"+escape(id), "listings", req, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *ListingsService) Delete(ctx context.Context, id string) error {
	return s.client.delete(ctx, "/listings/"+escape(id), "listings")
}

// HostListings returns the authenticated host's own listings.
func (s *ListingsService) HostListings(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.client.get(ctx, "/host/listings", "listings", &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
