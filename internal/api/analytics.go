package api

import (
	"context"

	"staynest/internal/models"
)

// AnalyticsService wraps the host analytics endpoint.
type AnalyticsService struct {
	client *Client
}

func (s *AnalyticsService) HostSummary(ctx context.Context) (*models.HostSummary, error) {
	var summary models.HostSummary
	if err := s.client.get(ctx, "/host/analytics", "analytics", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
