package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"bookvoyage/pkg/domain"
	"bookvoyage/services/web/internal/backend"
)

// /api/books
func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	page := s.backend.ListBooks(r.Context(), browserCookie(r), cursorParam(r), sizeParam(r))
	writeJSON(w, http.StatusOK, page)
}

// /api/books/{id} and /api/books/{id}/reviews
func (s *Server) handleBookByID(w http.ResponseWriter, r *http.Request) {
	id, rest := splitResourcePath(r.URL.Path, "/api/books/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	if rest == "reviews" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		page := s.backend.ListBookReviews(r.Context(), browserCookie(r), id, cursorParam(r), sizeParam(r))
		writeJSON(w, http.StatusOK, page)
		return
	}
	if rest != "" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	book, err := s.backend.GetBook(r.Context(), browserCookie(r), id)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// /api/reviews
func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := s.backend.ListReviews(r.Context(), browserCookie(r), cursorParam(r), sizeParam(r))
		writeJSON(w, http.StatusOK, page)
	case http.MethodPost:
		var input backend.CreateReviewInput
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if input.BookID == "" || strings.TrimSpace(input.Content) == "" {
			writeError(w, http.StatusBadRequest, "bookId and content are required")
			return
		}
		review, err := s.backend.CreateReview(r.Context(), browserCookie(r), input)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, review)
	default:
		methodNotAllowed(w)
	}
}

// /api/reviews/{id} plus comments, reaction and bookmark subresources.
func (s *Server) handleReviewSubtree(w http.ResponseWriter, r *http.Request) {
	id, rest := splitResourcePath(r.URL.Path, "/api/reviews/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	switch {
	case rest == "":
		s.handleReviewByID(w, r, id)
	case rest == "comments":
		s.handleReviewComments(w, r, id)
	case strings.HasPrefix(rest, "comments/"):
		commentID := strings.TrimPrefix(rest, "comments/")
		if commentID == "" || strings.Contains(commentID, "/") {
			http.NotFound(w, r)
			return
		}
		s.handleReviewCommentByID(w, r, id, commentID)
	case rest == "reaction":
		s.handleReviewReaction(w, r, id)
	case rest == "bookmark":
		s.handleReviewBookmark(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleReviewByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		review, err := s.backend.GetReview(r.Context(), browserCookie(r), id)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, review)
	case http.MethodDelete:
		if err := s.backend.DeleteReview(r.Context(), browserCookie(r), id); err != nil {
			writeBackendError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleReviewComments(w http.ResponseWriter, r *http.Request, reviewID string) {
	switch r.Method {
	case http.MethodGet:
		page := s.backend.ListComments(r.Context(), browserCookie(r), reviewID, cursorParam(r), sizeParam(r))
		writeJSON(w, http.StatusOK, page)
	case http.MethodPost:
		var req createCommentRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "content is required")
			return
		}
		comment, err := s.backend.CreateComment(r.Context(), browserCookie(r), reviewID, req.Content)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, comment)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleReviewCommentByID(w http.ResponseWriter, r *http.Request, reviewID, commentID string) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	if err := s.backend.DeleteComment(r.Context(), browserCookie(r), reviewID, commentID); err != nil {
		writeBackendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reactionRequest struct {
	Type domain.ReactionType `json:"type"`
}

func (s *Server) handleReviewReaction(w http.ResponseWriter, r *http.Request, reviewID string) {
	switch r.Method {
	case http.MethodPut:
		var req reactionRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Type == "" {
			writeError(w, http.StatusBadRequest, "type is required")
			return
		}
		result, err := s.backend.SetReaction(r.Context(), browserCookie(r), reviewID, req.Type)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	case http.MethodDelete:
		result, err := s.backend.ClearReaction(r.Context(), browserCookie(r), reviewID)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleReviewBookmark(w http.ResponseWriter, r *http.Request, reviewID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	result, err := s.backend.ToggleBookmark(r.Context(), browserCookie(r), reviewID)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// /api/user-books
func (s *Server) handleUserBooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := s.backend.ListUserBooks(r.Context(), browserCookie(r), cursorParam(r), sizeParam(r))
		writeJSON(w, http.StatusOK, page)
	case http.MethodPost:
		input, ok := decodeUserBookInput(w, r)
		if !ok {
			return
		}
		entry, err := s.backend.SaveUserBook(r.Context(), browserCookie(r), input)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	default:
		methodNotAllowed(w)
	}
}

// /api/user-books/{id}
func (s *Server) handleUserBookByID(w http.ResponseWriter, r *http.Request) {
	id, rest := splitResourcePath(r.URL.Path, "/api/user-books/")
	if id == "" || rest != "" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		entry, err := s.backend.GetUserBookDetail(r.Context(), browserCookie(r), id)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	case http.MethodPut:
		input, ok := decodeUserBookInput(w, r)
		if !ok {
			return
		}
		entry, err := s.backend.UpdateUserBook(r.Context(), browserCookie(r), id, input)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	case http.MethodDelete:
		if err := s.backend.DeleteUserBook(r.Context(), browserCookie(r), id); err != nil {
			writeBackendError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func decodeUserBookInput(w http.ResponseWriter, r *http.Request) (backend.SaveUserBookInput, bool) {
	var input backend.SaveUserBookInput
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return input, false
	}
	if input.BookID == "" {
		writeError(w, http.StatusBadRequest, "bookId is required")
		return input, false
	}
	return input, true
}

// /api/profiles/{id} plus followers, following and follow subresources.
func (s *Server) handleProfileSubtree(w http.ResponseWriter, r *http.Request) {
	id, rest := splitResourcePath(r.URL.Path, "/api/profiles/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	switch rest {
	case "":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		profile, err := s.backend.GetProfile(r.Context(), browserCookie(r), id)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	case "followers":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		page := s.backend.ListFollowers(r.Context(), browserCookie(r), id, cursorParam(r), sizeParam(r))
		writeJSON(w, http.StatusOK, page)
	case "following":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		page := s.backend.ListFollowing(r.Context(), browserCookie(r), id, cursorParam(r), sizeParam(r))
		writeJSON(w, http.StatusOK, page)
	case "follow":
		switch r.Method {
		case http.MethodPost:
			if err := s.backend.Follow(r.Context(), browserCookie(r), id); err != nil {
				writeBackendError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			if err := s.backend.Unfollow(r.Context(), browserCookie(r), id); err != nil {
				writeBackendError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			methodNotAllowed(w)
		}
	default:
		http.NotFound(w, r)
	}
}

// /api/search?q=...&startIndex=...&size=...
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	page := s.backend.SearchBooks(r.Context(), browserCookie(r), query, intParam(r, "startIndex", "0"), sizeParam(r))
	writeJSON(w, http.StatusOK, page)
}

// /api/recommendations/books?limit=...
func (s *Server) handleRecommendedBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	books := s.backend.RecommendedBooks(r.Context(), browserCookie(r), intParam(r, "limit", "6"))
	writeJSON(w, http.StatusOK, map[string]any{"items": books, "count": len(books)})
}

func (s *Server) handleUserAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.backend.UserAnalysis(r.Context(), browserCookie(r)))
}

func (s *Server) handleCommunityTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.backend.CommunityTrend(r.Context(), browserCookie(r)))
}

// splitResourcePath peels "{id}" and the remainder off a prefixed path.
func splitResourcePath(path, prefix string) (id, rest string) {
	trimmed := strings.TrimPrefix(path, prefix)
	parts := strings.SplitN(trimmed, "/", 2)
	id = parts[0]
	if len(parts) == 2 {
		rest = parts[1]
	}
	return id, rest
}
