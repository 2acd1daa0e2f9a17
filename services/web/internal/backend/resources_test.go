package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookvoyage/pkg/domain"
	"bookvoyage/pkg/paging"
)

// deadClient points at a closed listener so every live call fails.
func deadClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return NewClient(srv.URL)
}

func TestListFollowersFallbackPagesSevenFollowers(t *testing.T) {
	client := deadClient(t)

	first := client.ListFollowers(context.Background(), "", "user-001", nil, 5)
	if len(first.Items) != 5 {
		t.Fatalf("expected 5 followers on first page, got %d", len(first.Items))
	}
	if first.NextCursor == nil {
		t.Fatal("expected a next cursor after the first page")
	}

	second := client.ListFollowers(context.Background(), "", "user-001", first.NextCursor, 5)
	if len(second.Items) != 2 {
		t.Fatalf("expected the remaining 2 followers, got %d", len(second.Items))
	}
	if second.NextCursor != nil {
		t.Fatalf("expected terminal page, got cursor %q", *second.NextCursor)
	}

	seen := map[string]bool{}
	for _, p := range append(first.Items, second.Items...) {
		if seen[p.ID] {
			t.Fatalf("follower %s returned twice", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestListBooksPrefersLiveBackend(t *testing.T) {
	live := paging.Page[domain.Book]{
		Items:      []domain.Book{{ID: "live-1", Title: "Live Book"}},
		NextCursor: paging.Cursor("opaque-token-xyz"),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/books" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("cursor"); got != "" {
			t.Errorf("first page should not send a cursor, got %q", got)
		}
		if got := r.URL.Query().Get("size"); got != "4" {
			t.Errorf("unexpected size param: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(live)
	}))
	defer srv.Close()

	page := NewClient(srv.URL).ListBooks(context.Background(), "", nil, 4)
	if len(page.Items) != 1 || page.Items[0].ID != "live-1" {
		t.Fatalf("expected live items, got %+v", page.Items)
	}
	if page.NextCursor == nil || *page.NextCursor != "opaque-token-xyz" {
		t.Fatalf("live cursor must pass through unmodified, got %v", page.NextCursor)
	}
}

func TestListBooksFallsBackOnEmptyLiveResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[],"nextCursor":null}`))
	}))
	defer srv.Close()

	page := NewClient(srv.URL).ListBooks(context.Background(), "", nil, 3)
	if len(page.Items) != 3 {
		t.Fatalf("expected fallback page of 3, got %d", len(page.Items))
	}
}

func TestListBooksFallsBackOnWrongContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>login</html>"))
	}))
	defer srv.Close()

	page := NewClient(srv.URL).ListBooks(context.Background(), "", nil, 3)
	if len(page.Items) != 3 {
		t.Fatalf("expected fallback page on content-type mismatch, got %d items", len(page.Items))
	}
}

func TestGetUserBookDetailPropagatesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetUserBookDetail(context.Background(), "", "entry-404")
	if err == nil {
		t.Fatal("detail fetch must propagate failure for not-found rendering")
	}
}

func TestRecommendedBooksFallbackHonorsLimit(t *testing.T) {
	client := deadClient(t)
	items := client.RecommendedBooks(context.Background(), "", 3)
	if len(items) != 3 {
		t.Fatalf("expected 3 fallback recommendations, got %d", len(items))
	}
	for i, item := range items {
		if item.Rank != i+1 {
			t.Fatalf("fallback feed out of rank order at %d: %+v", i, item)
		}
	}
}

func TestSearchBooksFallbackFiltersByQuery(t *testing.T) {
	client := deadClient(t)
	page := client.SearchBooks(context.Background(), "", "weir", 0, 10)
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 sample books by Andy Weir, got %d", len(page.Items))
	}
	for _, hit := range page.Items {
		if hit.Source != "sample" {
			t.Fatalf("fallback hits must be marked sample, got %q", hit.Source)
		}
	}
}

func TestCommunityTrendFallback(t *testing.T) {
	client := deadClient(t)
	trend := client.CommunityTrend(context.Background(), "")
	if trend.Headline == "" || len(trend.RisingBooks) == 0 {
		t.Fatalf("expected populated fallback trend, got %+v", trend)
	}
}
