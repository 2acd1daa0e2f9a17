// Package fallback bundles a small static sample of books, reviews and
// profiles. Resource calls substitute these pages when the live backend is
// unreachable or returns nothing, so the UI stays populated and demoable.
// The datasets are read-only; pages windowed out of them are never mutated.
package fallback

import (
	"strings"
	"time"

	"bookvoyage/pkg/domain"
	"bookvoyage/pkg/paging"
)

var sampleTime = time.Date(2025, time.November, 12, 9, 30, 0, 0, time.UTC)

var books = []domain.Book{
	{ID: "book-001", ISBN: "9780441013593", Title: "Dune", Authors: []string{"Frank Herbert"}, Publisher: "Ace", PublishedYear: 1965, Description: "A desert planet, a noble house, and the spice that moves the universe.", AverageRating: 4.6, ReviewCount: 182},
	{ID: "book-002", ISBN: "9780143127741", Title: "The Martian", Authors: []string{"Andy Weir"}, Publisher: "Crown", PublishedYear: 2011, Description: "An astronaut stranded on Mars sciences his way home.", AverageRating: 4.4, ReviewCount: 140},
	{ID: "book-003", ISBN: "9780553382563", Title: "A Game of Thrones", Authors: []string{"George R. R. Martin"}, Publisher: "Bantam", PublishedYear: 1996, Description: "Winter is coming for the Seven Kingdoms.", AverageRating: 4.5, ReviewCount: 210},
	{ID: "book-004", ISBN: "9780062316097", Title: "Sapiens", Authors: []string{"Yuval Noah Harari"}, Publisher: "Harper", PublishedYear: 2014, Description: "A brief history of humankind.", AverageRating: 4.3, ReviewCount: 167},
	{ID: "book-005", ISBN: "9780345391803", Title: "The Hitchhiker's Guide to the Galaxy", Authors: []string{"Douglas Adams"}, Publisher: "Del Rey", PublishedYear: 1979, Description: "Don't panic, and always carry a towel.", AverageRating: 4.2, ReviewCount: 133},
	{ID: "book-006", ISBN: "9781250318541", Title: "Tomorrow, and Tomorrow, and Tomorrow", Authors: []string{"Gabrielle Zevin"}, Publisher: "Knopf", PublishedYear: 2022, Description: "Three decades of friendship told through the games two people build.", AverageRating: 4.1, ReviewCount: 98},
	{ID: "book-007", ISBN: "9780593135204", Title: "Project Hail Mary", Authors: []string{"Andy Weir"}, Publisher: "Ballantine", PublishedYear: 2021, Description: "A lone astronaut must save Earth, if he can remember who he is.", AverageRating: 4.7, ReviewCount: 175},
	{ID: "book-008", ISBN: "9780735211292", Title: "Atomic Habits", Authors: []string{"James Clear"}, Publisher: "Avery", PublishedYear: 2018, Description: "Tiny changes, remarkable results.", AverageRating: 4.0, ReviewCount: 120},
}

var reviews = []domain.Review{
	{ID: "review-001", BookID: "book-001", Book: &books[0], AuthorID: "user-002", AuthorName: "margaret", Title: "Still the benchmark", Content: "Fifty years on, nothing matches the world-building.", Rating: 5, Reactions: map[string]int{"like": 24, "insightful": 7}, BookmarkCount: 11, CommentCount: 3, CreatedAt: sampleTime, UpdatedAt: sampleTime},
	{ID: "review-002", BookID: "book-002", Book: &books[1], AuthorID: "user-003", AuthorName: "felix", Title: "Duct tape saves the day", Content: "The rare hard-SF book that is also funny.", Rating: 4, Reactions: map[string]int{"like": 15, "funny": 9}, BookmarkCount: 6, CommentCount: 2, CreatedAt: sampleTime.Add(2 * time.Hour), UpdatedAt: sampleTime.Add(2 * time.Hour)},
	{ID: "review-003", BookID: "book-004", Book: &books[3], AuthorID: "user-001", AuthorName: "haruka", Title: "Big ideas, broad strokes", Content: "Provocative even where it oversimplifies.", Rating: 4, Reactions: map[string]int{"insightful": 18}, BookmarkCount: 9, CommentCount: 4, CreatedAt: sampleTime.Add(5 * time.Hour), UpdatedAt: sampleTime.Add(5 * time.Hour)},
	{ID: "review-004", BookID: "book-003", Book: &books[2], AuthorID: "user-004", AuthorName: "tomas", Title: "Ruthless and brilliant", Content: "Nobody is safe, and that is the point.", Rating: 5, Reactions: map[string]int{"like": 31}, BookmarkCount: 14, CommentCount: 6, CreatedAt: sampleTime.Add(8 * time.Hour), UpdatedAt: sampleTime.Add(8 * time.Hour)},
	{ID: "review-005", BookID: "book-007", Book: &books[6], AuthorID: "user-002", AuthorName: "margaret", Title: "Jazz hands for science", Content: "The friendship at its core carries the whole book.", Rating: 5, Reactions: map[string]int{"like": 27, "insightful": 5}, BookmarkCount: 13, CommentCount: 5, CreatedAt: sampleTime.Add(26 * time.Hour), UpdatedAt: sampleTime.Add(26 * time.Hour)},
	{ID: "review-006", BookID: "book-005", Book: &books[4], AuthorID: "user-005", AuthorName: "nadia", Title: "Forty-two", Content: "Re-reads better every decade.", Rating: 4, Reactions: map[string]int{"funny": 21}, BookmarkCount: 4, CommentCount: 1, CreatedAt: sampleTime.Add(30 * time.Hour), UpdatedAt: sampleTime.Add(30 * time.Hour)},
	{ID: "review-007", BookID: "book-006", Book: &books[5], AuthorID: "user-003", AuthorName: "felix", Title: "Not about games at all", Content: "A love story about work, really.", Rating: 4, Reactions: map[string]int{"like": 12}, BookmarkCount: 7, CommentCount: 2, CreatedAt: sampleTime.Add(50 * time.Hour), UpdatedAt: sampleTime.Add(50 * time.Hour)},
	{ID: "review-008", BookID: "book-008", Book: &books[7], AuthorID: "user-004", AuthorName: "tomas", Title: "Useful, if repetitive", Content: "One strong idea stretched to book length, but the idea works.", Rating: 3, Reactions: map[string]int{"insightful": 8}, BookmarkCount: 3, CommentCount: 1, CreatedAt: sampleTime.Add(54 * time.Hour), UpdatedAt: sampleTime.Add(54 * time.Hour)},
}

var comments = map[string][]domain.Comment{
	"review-001": {
		{ID: "comment-001", ReviewID: "review-001", AuthorID: "user-001", AuthorName: "haruka", Content: "The sequels are worth it too.", CreatedAt: sampleTime.Add(time.Hour)},
		{ID: "comment-002", ReviewID: "review-001", AuthorID: "user-004", AuthorName: "tomas", Content: "Messiah divides people, but I agree.", CreatedAt: sampleTime.Add(90 * time.Minute)},
		{ID: "comment-003", ReviewID: "review-001", AuthorID: "user-005", AuthorName: "nadia", Content: "Reading this for the first time right now.", CreatedAt: sampleTime.Add(3 * time.Hour)},
	},
	"review-004": {
		{ID: "comment-004", ReviewID: "review-004", AuthorID: "user-002", AuthorName: "margaret", Content: "The Red Wedding broke me.", CreatedAt: sampleTime.Add(9 * time.Hour)},
		{ID: "comment-005", ReviewID: "review-004", AuthorID: "user-001", AuthorName: "haruka", Content: "Book four is where I stalled.", CreatedAt: sampleTime.Add(10 * time.Hour)},
	},
}

var profiles = []domain.Profile{
	{ID: "user-001", Nickname: "haruka", Bio: "History and hard SF.", FollowerCount: 7, FollowingCount: 12, ReviewCount: 34, JoinedAt: sampleTime.AddDate(-2, 0, 0)},
	{ID: "user-002", Nickname: "margaret", Bio: "Rereading the classics.", FollowerCount: 41, FollowingCount: 18, ReviewCount: 87, JoinedAt: sampleTime.AddDate(-3, -2, 0)},
	{ID: "user-003", Nickname: "felix", Bio: "Space, puzzles, coffee.", FollowerCount: 15, FollowingCount: 22, ReviewCount: 29, JoinedAt: sampleTime.AddDate(-1, -6, 0)},
	{ID: "user-004", Nickname: "tomas", Bio: "Epic fantasy completionist.", FollowerCount: 23, FollowingCount: 9, ReviewCount: 52, JoinedAt: sampleTime.AddDate(-2, -8, 0)},
}

// followers holds the sample follower graph. user-001 deliberately has
// seven followers so two pages at limit 5 exercise the cursor walk.
var followers = map[string][]domain.Profile{
	"user-001": {
		{ID: "user-002", Nickname: "margaret", FollowerCount: 41, FollowingCount: 18, ReviewCount: 87, JoinedAt: sampleTime.AddDate(-3, -2, 0)},
		{ID: "user-003", Nickname: "felix", FollowerCount: 15, FollowingCount: 22, ReviewCount: 29, JoinedAt: sampleTime.AddDate(-1, -6, 0)},
		{ID: "user-004", Nickname: "tomas", FollowerCount: 23, FollowingCount: 9, ReviewCount: 52, JoinedAt: sampleTime.AddDate(-2, -8, 0)},
		{ID: "user-005", Nickname: "nadia", FollowerCount: 4, FollowingCount: 31, ReviewCount: 11, JoinedAt: sampleTime.AddDate(0, -11, 0)},
		{ID: "user-006", Nickname: "oskar", FollowerCount: 2, FollowingCount: 5, ReviewCount: 3, JoinedAt: sampleTime.AddDate(0, -7, 0)},
		{ID: "user-007", Nickname: "priya", FollowerCount: 19, FollowingCount: 14, ReviewCount: 40, JoinedAt: sampleTime.AddDate(-1, -1, 0)},
		{ID: "user-008", Nickname: "wen", FollowerCount: 8, FollowingCount: 8, ReviewCount: 16, JoinedAt: sampleTime.AddDate(0, -4, 0)},
	},
}

var libraryEntries = []domain.LibraryEntry{
	{ID: "entry-001", UserID: "user-001", Book: books[0], Status: domain.ReadingFinished, Progress: 100, Rating: 5, Note: "Annual reread.", UpdatedAt: sampleTime},
	{ID: "entry-002", UserID: "user-001", Book: books[6], Status: domain.ReadingInProgress, Progress: 62, UpdatedAt: sampleTime.Add(20 * time.Hour)},
	{ID: "entry-003", UserID: "user-001", Book: books[3], Status: domain.ReadingWantToRead, Progress: 0, UpdatedAt: sampleTime.Add(22 * time.Hour)},
	{ID: "entry-004", UserID: "user-001", Book: books[5], Status: domain.ReadingInProgress, Progress: 30, Note: "Book club pick.", UpdatedAt: sampleTime.Add(40 * time.Hour)},
	{ID: "entry-005", UserID: "user-001", Book: books[4], Status: domain.ReadingAbandoned, Progress: 15, UpdatedAt: sampleTime.Add(44 * time.Hour)},
}

var recommendedBooks = []domain.RecommendedBook{
	{Book: books[6], Score: 0.94, Rank: 1, Reason: "Readers of The Martian loved this."},
	{Book: books[0], Score: 0.91, Rank: 2, Reason: "Classic pick for SF fans."},
	{Book: books[5], Score: 0.83, Rank: 3, Reason: "Trending with people you follow."},
	{Book: books[2], Score: 0.78, Rank: 4, Reason: "Because you finished epic fantasy recently."},
	{Book: books[3], Score: 0.71, Rank: 5, Reason: "Popular non-fiction this month."},
	{Book: books[7], Score: 0.64, Rank: 6, Reason: "Short, practical, widely bookmarked."},
}

var userAnalysis = domain.UserAnalysis{
	UserID:      "user-001",
	Summary:     "You gravitate toward hard science fiction with strong problem-solving arcs, with an occasional detour into big-picture non-fiction.",
	TopGenres:   []string{"science fiction", "non-fiction", "fantasy"},
	GeneratedAt: sampleTime,
}

var communityTrend = domain.CommunityTrend{
	Headline:    "Hopeful hard SF keeps climbing",
	Summary:     "Project Hail Mary and The Martian dominate this week's bookmarks, while literary fiction about friendship holds steady.",
	RisingBooks: []domain.Book{books[6], books[1], books[5]},
	Keywords:    []string{"hard sf", "found family", "survival"},
}

// Books returns a fallback page of the sample catalog.
func Books(cursor *string, limit int) paging.Page[domain.Book] {
	return paging.Paginate(books, cursor, limit)
}

// Reviews returns a fallback page of sample reviews, newest-first order as
// bundled.
func Reviews(cursor *string, limit int) paging.Page[domain.Review] {
	return paging.Paginate(reviews, cursor, limit)
}

// BookReviews returns sample reviews for one book.
func BookReviews(bookID string, cursor *string, limit int) paging.Page[domain.Review] {
	matched := make([]domain.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.BookID == bookID {
			matched = append(matched, review)
		}
	}
	return paging.Paginate(matched, cursor, limit)
}

// Comments returns sample comments for one review.
func Comments(reviewID string, cursor *string, limit int) paging.Page[domain.Comment] {
	return paging.Paginate(comments[reviewID], cursor, limit)
}

// Followers returns the sample follower page for a user.
func Followers(userID string, cursor *string, limit int) paging.Page[domain.Profile] {
	return paging.Paginate(followers[userID], cursor, limit)
}

// Following reuses the follower graph inverted: sample users follow the
// profiles that follow them. Good enough for a demo page.
func Following(userID string, cursor *string, limit int) paging.Page[domain.Profile] {
	return paging.Paginate(followers[userID], cursor, limit)
}

// Profile returns the sample profile for id, if bundled.
func Profile(id string) (domain.Profile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Profile{}, false
}

// LibraryEntries returns a fallback page of the sample reading library.
func LibraryEntries(cursor *string, limit int) paging.Page[domain.LibraryEntry] {
	return paging.Paginate(libraryEntries, cursor, limit)
}

// SearchBooks filters the sample catalog by a case-insensitive substring
// match on title and authors.
func SearchBooks(query string, cursor *string, limit int) paging.Page[domain.SearchResult] {
	query = strings.ToLower(strings.TrimSpace(query))
	matched := make([]domain.SearchResult, 0, len(books))
	for _, book := range books {
		if query == "" || matchesQuery(book, query) {
			matched = append(matched, domain.SearchResult{Book: book, Source: "sample"})
		}
	}
	return paging.Paginate(matched, cursor, limit)
}

func matchesQuery(book domain.Book, query string) bool {
	if strings.Contains(strings.ToLower(book.Title), query) {
		return true
	}
	for _, author := range book.Authors {
		if strings.Contains(strings.ToLower(author), query) {
			return true
		}
	}
	return false
}

// RecommendedBooks returns up to limit sample recommendations.
func RecommendedBooks(limit int) []domain.RecommendedBook {
	if limit <= 0 || limit > len(recommendedBooks) {
		limit = len(recommendedBooks)
	}
	return recommendedBooks[:limit]
}

// UserAnalysis returns the bundled sample reading analysis.
func UserAnalysis() domain.UserAnalysis {
	return userAnalysis
}

// CommunityTrend returns the bundled sample trend report.
func CommunityTrend() domain.CommunityTrend {
	return communityTrend
}
