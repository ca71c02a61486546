package views

import (
	"staynest/internal/models"
)

// CanReview reports whether the viewer may write a review for the listing:
// at least one completed stay there and no review of theirs yet. The API
// enforces the same rule server-side.
func CanReview(viewer models.UserIdentity, bookings []models.Booking, reviews []models.Review, listingID string) bool {
	completed := false
	for _, b := range bookings {
		if b.ListingID == listingID && b.GuestID == viewer.UserID && b.Status == models.BookingCompleted {
			completed = true
			break
		}
	}
	if !completed {
		return false
	}

	for _, r := range reviews {
		if r.ListingID == listingID && r.UserID == viewer.UserID {
			return false
		}
	}
	return true
}

// HasVotedHelpful reports whether the viewer already voted on a review.
func HasVotedHelpful(review models.Review, viewer models.UserIdentity) bool {
	for _, id := range review.HelpfulVotes {
		if id == viewer.UserID {
			return true
		}
	}
	return false
}

// HelpfulCount is the number of distinct helpful votes on a review.
func HelpfulCount(review models.Review) int {
	return len(review.HelpfulVotes)
}
