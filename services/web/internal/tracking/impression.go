package tracking

import (
	"strconv"
	"sync"
	"time"

	"bookvoyage/pkg/domain"
)

const (
	// visibleFraction is the minimum share of the element that must be on
	// screen for dwell time to accumulate.
	visibleFraction = 0.5
	// minDwell is the continuous visible duration required before an
	// impression counts.
	minDwell = 1000 * time.Millisecond
)

// Content identifies what a watcher is tracking and where it sat in a feed.
type Content struct {
	ContentType string
	ContentID   string
	Position    int
	Rank        int
	Score       float64
}

// ImpressionWatcher turns a stream of visibility samples for one tracked
// element into at most one impression event. An element must be at least
// half visible continuously for a second before it counts; dropping below
// the threshold resets the clock. One watcher maps to one element mount.
type ImpressionWatcher struct {
	collector *Collector
	identity  Identity
	content   Content

	mu           sync.Mutex
	visibleSince *time.Time
	sent         bool
}

// NewImpressionWatcher constructs a watcher for one mounted element.
func NewImpressionWatcher(collector *Collector, identity Identity, content Content) *ImpressionWatcher {
	return &ImpressionWatcher{collector: collector, identity: identity, content: content}
}

// Observe feeds one visibility sample: the fraction of the element on
// screen at the sample time. Once the dwell requirement is met the
// impression is enqueued and further samples are ignored.
func (w *ImpressionWatcher) Observe(fraction float64, at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sent {
		return
	}
	if fraction < visibleFraction {
		w.visibleSince = nil
		return
	}
	if w.visibleSince == nil {
		since := at
		w.visibleSince = &since
		return
	}
	dwell := at.Sub(*w.visibleSince)
	if dwell < minDwell {
		return
	}
	w.sent = true
	w.collector.Enqueue(w.identity, domain.TrackingEvent{
		EventType:   domain.EventImpression,
		ContentType: w.content.ContentType,
		ContentID:   w.content.ContentID,
		Position:    w.content.Position,
		Rank:        w.content.Rank,
		Score:       w.content.Score,
		Metadata:    map[string]string{"visibilityMs": strconv.FormatInt(dwell.Milliseconds(), 10)},
	})
}

// Sent reports whether this watcher already recorded its impression.
func (w *ImpressionWatcher) Sent() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sent
}
