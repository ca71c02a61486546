package api

import (
	"context"

	"staynest/internal/models"
)

// WishlistService wraps the wishlist endpoints.
type WishlistService struct {
	client *Client
}

func (s *WishlistService) Get(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.client.get(ctx, "/wishlist", "wishlist", &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *WishlistService) Add(ctx context.Context, listingID string) error {
	req := models.WishlistRequest{ListingID: listingID}
	return s.client.post(ctx, "/wishlist", "wishlist", req, nil)
}

func (s *WishlistService) Remove(ctx context.Context, listingID string) error {
	return s.client.delete(ctx, "/wishlist/"+escape(listingID), "wishlist")
}

// Contains reports whether a listing is on the viewer's wishlist. Detail
// views fetch this independently of the listing itself.
func (s *WishlistService) Contains(ctx context.Context, listingID string) (bool, error) {
	var status models.WishlistStatus
	if err := s.client.get(ctx, "/wishlist/"+escape(listingID), "wishlist", &status); err != nil {
		return false, err
	}
	return status.Saved, nil
}
