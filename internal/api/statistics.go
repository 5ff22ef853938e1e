package api

import (
	"context"
	"net/url"
	"strconv"

	"spendo/internal/models"
)

// Durations for the statistics tabs.
const (
	DurationWeek  = 7
	DurationMonth = 30
	DurationYear  = 365
)

// StatisticsService wraps the /statistic resource. Aggregation is
// server-side; the client only requests and decodes.
type StatisticsService struct {
	client *Client
}

// Get fetches the pre-aggregated statistics for a window of the given
// number of days.
func (s *StatisticsService) Get(ctx context.Context, durationDays int) (*models.Statistic, error) {
	q := url.Values{}
	q.Set("duration", strconv.Itoa(durationDays))

	var stat models.Statistic
	if err := s.client.get(ctx, "/statistic", q, &stat); err != nil {
		return nil, err
	}
	return &stat, nil
}

// CurrenciesService wraps the /currency resource. This endpoint is
// unauthenticated; it backs the currency picker at registration.
type CurrenciesService struct {
	client *Client
}

// List returns the available display currencies.
func (s *CurrenciesService) List(ctx context.Context) ([]models.Currency, error) {
	var currencies []models.Currency
	if err := s.client.get(ctx, "/currency", nil, &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}
