package backend

import (
	"context"
	"net/http"

	"bookvoyage/pkg/domain"
)

// SendTrackingEvents posts one telemetry batch. Delivery is best-effort;
// the collector drops the batch on error rather than retrying.
func (c *Client) SendTrackingEvents(ctx context.Context, events []domain.TrackingEvent) error {
	if len(events) == 0 {
		return nil
	}
	payload := map[string]any{"events": events}
	return c.DoJSON(ctx, http.MethodPost, "/api/tracking/events", RequestOptions{Body: payload, noRetry: true}, nil)
}
