package mashub

import (
	"context"
	"encoding/json"
	"net/url"
)

// AnalyticsService queries platform and contract metrics.
type AnalyticsService struct {
	client *Client
}

// Query returns one metric over a timeframe.
func (s *AnalyticsService) Query(ctx context.Context, query AnalyticsQuery) (*AnalyticsResult, error) {
	return post[*AnalyticsResult](ctx, s.client, "/analytics/query", query)
}

// Overview returns every metric over timeframe. An empty timeframe means
// the last 24 hours.
func (s *AnalyticsService) Overview(ctx context.Context, timeframe Timeframe) (*Overview, error) {
	if timeframe == "" {
		timeframe = Timeframe24h
	}
	q := url.Values{"timeframe": {string(timeframe)}}
	return call[*Overview](ctx, s.client, withQuery("/analytics/overview", q))
}

// ContractAnalytics returns analytics for one contract, or for all
// contracts when address is empty.
func (s *AnalyticsService) ContractAnalytics(ctx context.Context, address string) (json.RawMessage, error) {
	q := url.Values{}
	addIf(q, "contract", address)
	return call[json.RawMessage](ctx, s.client, withQuery("/smart-contracts/analytics", q))
}
