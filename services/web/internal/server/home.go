package server

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"bookvoyage/pkg/domain"
	"bookvoyage/pkg/paging"
	"bookvoyage/services/web/internal/session"
	"bookvoyage/services/web/internal/tracking"
)

type homeResponse struct {
	User             *domain.AuthUser          `json:"user"`
	RecentReviews    paging.Page[domain.Review] `json:"recentReviews"`
	RecommendedBooks []domain.RecommendedBook  `json:"recommendedBooks"`
	CommunityTrend   domain.CommunityTrend     `json:"communityTrend"`
	UserAnalysis     domain.UserAnalysis       `json:"userAnalysis"`
}

// handleHome aggregates everything the landing page needs in one round
// trip. The sub-fetches run concurrently; each read path carries its own
// fallback, so the page never fails as a whole.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	registry, err := session.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session registry not configured")
		return
	}
	id := tracking.EnsureIdentity(w, r)
	cookie := browserCookie(r)

	var resp homeResponse
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		snap := registry.Get(id.SessionID).CurrentOrRefresh(ctx, cookie, s.refreshLeeway)
		resp.User = snap.User
		return nil
	})
	g.Go(func() error {
		resp.RecentReviews = s.backend.ListReviews(ctx, cookie, nil, paging.DefaultLimit)
		return nil
	})
	g.Go(func() error {
		resp.RecommendedBooks = s.backend.RecommendedBooks(ctx, cookie, paging.DefaultLimit)
		return nil
	})
	g.Go(func() error {
		resp.CommunityTrend = s.backend.CommunityTrend(ctx, cookie)
		return nil
	})
	g.Go(func() error {
		resp.UserAnalysis = s.backend.UserAnalysis(ctx, cookie)
		return nil
	})
	_ = g.Wait()
	writeJSON(w, http.StatusOK, resp)
}
