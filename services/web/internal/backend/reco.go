package backend

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"bookvoyage/pkg/domain"
	"bookvoyage/services/web/internal/fallback"
)

// RecommendedBooks returns the personalized recommendation feed. The feed
// endpoint family takes a plain limit parameter, no cursor.
func (c *Client) RecommendedBooks(ctx context.Context, cookie string, limit int) []domain.RecommendedBook {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Items []domain.RecommendedBook `json:"items"`
	}
	err := c.DoJSON(ctx, http.MethodGet, withQuery("/api/recommendations/books", q), RequestOptions{Cookie: cookie}, &resp)
	if err != nil || len(resp.Items) == 0 {
		if err != nil {
			slog.DebugContext(ctx, "live fetch failed, serving fallback", "resource", "recommendations", "err", err)
		}
		return fallback.RecommendedBooks(limit)
	}
	return resp.Items
}

// UserAnalysis returns the AI reading-taste summary for the current user.
func (c *Client) UserAnalysis(ctx context.Context, cookie string) domain.UserAnalysis {
	var analysis domain.UserAnalysis
	err := c.DoJSON(ctx, http.MethodGet, "/api/ai/user-analysis", RequestOptions{Cookie: cookie}, &analysis)
	if err != nil || analysis.Summary == "" {
		if err != nil {
			slog.DebugContext(ctx, "live fetch failed, serving fallback", "resource", "user_analysis", "err", err)
		}
		return fallback.UserAnalysis()
	}
	return analysis
}

// CommunityTrend returns the AI community trend report.
func (c *Client) CommunityTrend(ctx context.Context, cookie string) domain.CommunityTrend {
	var trend domain.CommunityTrend
	err := c.DoJSON(ctx, http.MethodGet, "/api/ai/community-trend", RequestOptions{Cookie: cookie}, &trend)
	if err != nil || trend.Headline == "" {
		if err != nil {
			slog.DebugContext(ctx, "live fetch failed, serving fallback", "resource", "community_trend", "err", err)
		}
		return fallback.CommunityTrend()
	}
	return trend
}
