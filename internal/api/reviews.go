package api

import (
	"context"

	"staynest/internal/models"
)

// ReviewsService wraps the review endpoints.
type ReviewsService struct {
	client *Client
}

func (s *ReviewsService) ListByListing(ctx context.Context, listingID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.client.get(ctx, "/listings/"+escape(listingID)+"/reviews", "reviews", &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewsService) Create(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	var review models.Review
	if err := s.client.post(ctx, "/reviews", "reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Respond attaches a host response to a review.
func (s *ReviewsService) Respond(ctx context.Context, reviewID, comment string) (*models.Review, error) {
	var review models.Review
	req := models.RespondReviewRequest{Comment: comment}
	if err := s.client.post(ctx, "/reviews/"+escape(reviewID)+"/response", "reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// ToggleHelpful flips the viewer's helpful vote on a review and returns
// the updated review.
func (s *ReviewsService) ToggleHelpful(ctx context.Context, reviewID string) (*models.Review, error) {
	var review models.Review
	if err := s.client.post(ctx, "/reviews/"+escape(reviewID)+"/helpful", "reviews", nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
