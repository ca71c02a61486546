package views

import (
	"context"
	"strings"
	"sync"

	"staynest/internal/api"
	"staynest/internal/models"
)

// ListingDetail is the view state behind a listing page. The listing and
// the wishlist status are fetched concurrently and independently; each
// response updates only its own fields, so their ordering never matters.
type ListingDetail struct {
	client    *api.Client
	listingID string

	mu        sync.Mutex
	dismissed bool
	wg        sync.WaitGroup

	Listing    *models.Listing
	ListingErr error

	Saved      bool
	SavedKnown bool
}

// NewListingDetail creates the view state for one listing.
func NewListingDetail(client *api.Client, listingID string) *ListingDetail {
	return &ListingDetail{client: client, listingID: listingID}
}

// Load starts both fetches and returns immediately. Responses arriving
// after Dismiss are discarded as no-ops, never treated as errors.
func (v *ListingDetail) Load(ctx context.Context) {
	v.wg.Add(2)

	go func() {
		defer v.wg.Done()
		listing, err := v.client.Listings.Get(ctx, v.listingID)
		v.apply(func() {
			v.Listing = listing
			v.ListingErr = err
		})
	}()

	go func() {
		defer v.wg.Done()
		saved, err := v.client.Wishlist.Contains(ctx, v.listingID)
		v.apply(func() {
			// Wishlist status is decoration; a failed fetch just
			// leaves the control hidden.
			if err == nil {
				v.Saved = saved
				v.SavedKnown = true
			}
		})
	}()
}

// Wait blocks until both in-flight fetches have settled.
func (v *ListingDetail) Wait() {
	v.wg.Wait()
}

// Dismiss marks the view as gone; late responses are dropped.
func (v *ListingDetail) Dismiss() {
	v.mu.Lock()
	v.dismissed = true
	v.mu.Unlock()
}

func (v *ListingDetail) apply(update func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.dismissed {
		return
	}
	update()
}

// CanBook reports whether the booking control renders for the viewer.
// Hosts never book their own listing; the form re-checks this on submit.
func (v *ListingDetail) CanBook(viewer models.UserIdentity) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Listing != nil && v.Listing.HostID != viewer.UserID
}

// CoverImageURL resolves the first image against the asset base URL.
func (v *ListingDetail) CoverImageURL(assetBaseURL string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.Listing == nil || len(v.Listing.Images) == 0 {
		return ""
	}
	return ImageURL(assetBaseURL, v.Listing.Images[0])
}

// ImageURL resolves a possibly relative image path against the configured
// upload/asset base URL.
func ImageURL(assetBaseURL string, img models.Image) string {
	if img.URL == "" {
		return ""
	}
	if strings.HasPrefix(img.URL, "http://") || strings.HasPrefix(img.URL, "https://") {
		return img.URL
	}
	return strings.TrimSuffix(assetBaseURL, "/") + "/" + strings.TrimPrefix(img.URL, "/")
}
