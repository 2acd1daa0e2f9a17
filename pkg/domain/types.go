package domain

import "time"

type ReadingStatus string

const (
	ReadingWantToRead ReadingStatus = "want_to_read"
	ReadingInProgress ReadingStatus = "reading"
	ReadingFinished   ReadingStatus = "finished"
	ReadingAbandoned  ReadingStatus = "abandoned"
)

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionInsight ReactionType = "insightful"
	ReactionFunny   ReactionType = "funny"
)

// AuthUser is the backend's view of the currently signed-in user.
type AuthUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Book struct {
	ID            string   `json:"id"`
	ISBN          string   `json:"isbn,omitempty"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedYear int      `json:"publishedYear,omitempty"`
	CoverURL      string   `json:"coverUrl,omitempty"`
	Description   string   `json:"description,omitempty"`
	AverageRating float64  `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}

type Review struct {
	ID            string         `json:"id"`
	BookID        string         `json:"bookId"`
	Book          *Book          `json:"book,omitempty"`
	AuthorID      string         `json:"authorId"`
	AuthorName    string         `json:"authorName"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Rating        int            `json:"rating"`
	Reactions     map[string]int `json:"reactions,omitempty"`
	MyReaction    ReactionType   `json:"myReaction,omitempty"`
	Bookmarked    bool           `json:"bookmarked"`
	BookmarkCount int            `json:"bookmarkCount"`
	CommentCount  int            `json:"commentCount"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type Comment struct {
	ID         string    `json:"id"`
	ReviewID   string    `json:"reviewId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LibraryEntry is a book in a user's personal reading library.
type LibraryEntry struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	Book       Book          `json:"book"`
	Status     ReadingStatus `json:"status"`
	Progress   int           `json:"progress"`
	Rating     int           `json:"rating,omitempty"`
	Note       string        `json:"note,omitempty"`
	StartedAt  *time.Time    `json:"startedAt,omitempty"`
	FinishedAt *time.Time    `json:"finishedAt,omitempty"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type Profile struct {
	ID             string    `json:"id"`
	Nickname       string    `json:"nickname"`
	Bio            string    `json:"bio,omitempty"`
	AvatarURL      string    `json:"avatarUrl,omitempty"`
	FollowerCount  int       `json:"followerCount"`
	FollowingCount int       `json:"followingCount"`
	ReviewCount    int       `json:"reviewCount"`
	Following      bool      `json:"following"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// RecommendedBook is a backend-scored recommendation feed entry.
type RecommendedBook struct {
	Book   Book    `json:"book"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
	Reason string  `json:"reason,omitempty"`
}

// UserAnalysis is the AI-derived reading taste summary for a user.
type UserAnalysis struct {
	UserID      string    `json:"userId"`
	Summary     string    `json:"summary"`
	TopGenres   []string  `json:"topGenres"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// CommunityTrend is the AI-derived community-wide trend report.
type CommunityTrend struct {
	Headline    string   `json:"headline"`
	Summary     string   `json:"summary"`
	RisingBooks []Book   `json:"risingBooks"`
	Keywords    []string `json:"keywords"`
}

// SearchResult is one hit from the external book search
// (Google Books style startIndex/size windowing).
type SearchResult struct {
	Book       Book   `json:"book"`
	Source     string `json:"source"`
	ExternalID string `json:"externalId,omitempty"`
}

type EventType string

const (
	EventImpression EventType = "impression"
	EventClick      EventType = "click"
)

// TrackingEvent is a single UI telemetry record delivered in batches.
type TrackingEvent struct {
	EventID     string            `json:"eventId"`
	EventType   EventType         `json:"eventType"`
	SessionID   string            `json:"sessionId"`
	DeviceID    string            `json:"deviceId"`
	ClientTime  int64             `json:"clientTime"`
	ContentType string            `json:"contentType"`
	ContentID   string            `json:"contentId"`
	Position    int               `json:"position,omitempty"`
	Rank        int               `json:"rank,omitempty"`
	Score       float64           `json:"score,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
