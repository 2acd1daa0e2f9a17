package backend

import (
	"context"
	"net/http"

	"bookvoyage/pkg/domain"
	"bookvoyage/pkg/paging"
	"bookvoyage/services/web/internal/fallback"
)

// ListReviews returns the global review feed.
func (c *Client) ListReviews(ctx context.Context, cookie string, cursor *string, size int) paging.Page[domain.Review] {
	return fetchWithFallback(ctx, "reviews",
		func(ctx context.Context) (paging.Page[domain.Review], error) {
			var page paging.Page[domain.Review]
			err := c.DoJSON(ctx, http.MethodGet, withQuery("/api/reviews", cursorQuery(cursor, size)), RequestOptions{Cookie: cookie}, &page)
			return page, err
		},
		func() paging.Page[domain.Review] { return fallback.Reviews(cursor, size) },
	)
}

// ListBookReviews returns reviews for one book.
func (c *Client) ListBookReviews(ctx context.Context, cookie, bookID string, cursor *string, size int) paging.Page[domain.Review] {
	return fetchWithFallback(ctx, "book_reviews",
		func(ctx context.Context) (paging.Page[domain.Review], error) {
			var page paging.Page[domain.Review]
			err := c.DoJSON(ctx, http.MethodGet, withQuery("/api/books/"+bookID+"/reviews", cursorQuery(cursor, size)), RequestOptions{Cookie: cookie}, &page)
			return page, err
		},
		func() paging.Page[domain.Review] { return fallback.BookReviews(bookID, cursor, size) },
	)
}

// GetReview fetches one review. Failures propagate so the caller can render
// a not-found state.
func (c *Client) GetReview(ctx context.Context, cookie, id string) (domain.Review, error) {
	var review domain.Review
	if err := c.DoJSON(ctx, http.MethodGet, "/api/reviews/"+id, RequestOptions{Cookie: cookie}, &review); err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

// CreateReviewInput carries the user-authored review fields.
type CreateReviewInput struct {
	BookID  string `json:"bookId"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// CreateReview posts a new review. Mutations are write-through: no fallback,
// the caller sees the backend's answer.
func (c *Client) CreateReview(ctx context.Context, cookie string, input CreateReviewInput) (domain.Review, error) {
	var review domain.Review
	if err := c.DoJSON(ctx, http.MethodPost, "/api/reviews", RequestOptions{Cookie: cookie, Body: input}, &review); err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

// DeleteReview removes a review owned by the current user.
func (c *Client) DeleteReview(ctx context.Context, cookie, id string) error {
	return c.DoJSON(ctx, http.MethodDelete, "/api/reviews/"+id, RequestOptions{Cookie: cookie}, nil)
}

// ListComments returns comments under a review.
func (c *Client) ListComments(ctx context.Context, cookie, reviewID string, cursor *string, size int) paging.Page[domain.Comment] {
	return fetchWithFallback(ctx, "comments",
		func(ctx context.Context) (paging.Page[domain.Comment], error) {
			var page paging.Page[domain.Comment]
			err := c.DoJSON(ctx, http.MethodGet, withQuery("/api/reviews/"+reviewID+"/comments", cursorQuery(cursor, size)), RequestOptions{Cookie: cookie}, &page)
			return page, err
		},
		func() paging.Page[domain.Comment] { return fallback.Comments(reviewID, cursor, size) },
	)
}

// CreateComment posts a comment under a review.
func (c *Client) CreateComment(ctx context.Context, cookie, reviewID, content string) (domain.Comment, error) {
	var comment domain.Comment
	payload := map[string]string{"content": content}
	if err := c.DoJSON(ctx, http.MethodPost, "/api/reviews/"+reviewID+"/comments", RequestOptions{Cookie: cookie, Body: payload}, &comment); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

// DeleteComment removes a comment owned by the current user.
func (c *Client) DeleteComment(ctx context.Context, cookie, reviewID, commentID string) error {
	return c.DoJSON(ctx, http.MethodDelete, "/api/reviews/"+reviewID+"/comments/"+commentID, RequestOptions{Cookie: cookie}, nil)
}

// ReactionResult is the authoritative reaction state after a toggle. The
// client never extrapolates counts; the next read from the backend wins.
type ReactionResult struct {
	Reactions  map[string]int      `json:"reactions"`
	MyReaction domain.ReactionType `json:"myReaction,omitempty"`
}

// SetReaction sets or replaces the current user's reaction on a review.
func (c *Client) SetReaction(ctx context.Context, cookie, reviewID string, reaction domain.ReactionType) (ReactionResult, error) {
	var result ReactionResult
	payload := map[string]string{"type": string(reaction)}
	if err := c.DoJSON(ctx, http.MethodPut, "/api/reviews/"+reviewID+"/reaction", RequestOptions{Cookie: cookie, Body: payload}, &result); err != nil {
		return ReactionResult{}, err
	}
	return result, nil
}

// ClearReaction removes the current user's reaction.
func (c *Client) ClearReaction(ctx context.Context, cookie, reviewID string) (ReactionResult, error) {
	var result ReactionResult
	if err := c.DoJSON(ctx, http.MethodDelete, "/api/reviews/"+reviewID+"/reaction", RequestOptions{Cookie: cookie}, &result); err != nil {
		return ReactionResult{}, err
	}
	return result, nil
}

// BookmarkResult is the authoritative bookmark state after a toggle.
type BookmarkResult struct {
	Bookmarked    bool `json:"bookmarked"`
	BookmarkCount int  `json:"bookmarkCount"`
}

// ToggleBookmark flips the current user's bookmark on a review.
func (c *Client) ToggleBookmark(ctx context.Context, cookie, reviewID string) (BookmarkResult, error) {
	var result BookmarkResult
	if err := c.DoJSON(ctx, http.MethodPost, "/api/reviews/"+reviewID+"/bookmark", RequestOptions{Cookie: cookie}, &result); err != nil {
		return BookmarkResult{}, err
	}
	return result, nil
}
