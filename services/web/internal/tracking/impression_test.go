package tracking

import (
	"strconv"
	"testing"
	"time"

	"bookvoyage/pkg/domain"
)

func impressionContent() Content {
	return Content{ContentType: "book", ContentID: "book-001", Position: 2, Rank: 3, Score: 0.87}
}

func TestImpressionAfterSustainedVisibility(t *testing.T) {
	sender := newCaptureSender()
	c := NewCollector(Config{Sender: sender, BatchSize: 1})
	defer c.Close()

	w := NewImpressionWatcher(c, testIdentity(), impressionContent())
	start := time.Now()
	w.Observe(0.8, start)
	w.Observe(0.8, start.Add(600*time.Millisecond))
	w.Observe(0.8, start.Add(1200*time.Millisecond))

	batch := waitBatch(t, sender, 2*time.Second)
	event := batch[0]
	if event.EventType != domain.EventImpression {
		t.Fatalf("expected an impression event, got %q", event.EventType)
	}
	if event.ContentID != "book-001" || event.Rank != 3 {
		t.Fatalf("content fields not carried through: %+v", event)
	}
	ms, err := strconv.ParseInt(event.Metadata["visibilityMs"], 10, 64)
	if err != nil || ms < 1000 {
		t.Fatalf("expected visibilityMs >= 1000, got %q", event.Metadata["visibilityMs"])
	}
	if !w.Sent() {
		t.Fatal("watcher should report the impression as sent")
	}
}

func TestNoImpressionForShortGlance(t *testing.T) {
	sender := newCaptureSender()
	c := NewCollector(Config{Sender: sender, BatchSize: 1})
	defer c.Close()

	w := NewImpressionWatcher(c, testIdentity(), impressionContent())
	start := time.Now()
	w.Observe(0.9, start)
	w.Observe(0.9, start.Add(400*time.Millisecond))
	w.Observe(0.1, start.Add(450*time.Millisecond))

	if w.Sent() {
		t.Fatal("400ms of visibility must not produce an impression")
	}
	if c.Pending() != 0 {
		t.Fatalf("no event should be queued, %d pending", c.Pending())
	}
}

func TestVisibilityDipResetsTheClock(t *testing.T) {
	sender := newCaptureSender()
	c := NewCollector(Config{Sender: sender, BatchSize: 1})
	defer c.Close()

	w := NewImpressionWatcher(c, testIdentity(), impressionContent())
	start := time.Now()
	w.Observe(0.8, start)
	// Dips below the threshold at 800ms, so the first 800ms do not count.
	w.Observe(0.2, start.Add(800*time.Millisecond))
	w.Observe(0.8, start.Add(900*time.Millisecond))
	w.Observe(0.8, start.Add(1500*time.Millisecond))

	if w.Sent() {
		t.Fatal("600ms since re-entering visibility must not fire yet")
	}

	w.Observe(0.8, start.Add(2000*time.Millisecond))
	if !w.Sent() {
		t.Fatal("1100ms of continuous visibility should fire the impression")
	}
}

func TestAtMostOneImpressionPerWatcher(t *testing.T) {
	sender := newCaptureSender()
	c := NewCollector(Config{Sender: sender, BatchSize: 1})
	defer c.Close()

	w := NewImpressionWatcher(c, testIdentity(), impressionContent())
	start := time.Now()
	w.Observe(0.8, start)
	w.Observe(0.8, start.Add(1200*time.Millisecond))
	waitBatch(t, sender, 2*time.Second)

	// Scrolling away and back must not fire again on the same watcher.
	w.Observe(0.0, start.Add(2*time.Second))
	w.Observe(0.8, start.Add(3*time.Second))
	w.Observe(0.8, start.Add(5*time.Second))

	select {
	case <-sender.got:
		t.Fatal("a watcher must emit at most one impression")
	case <-time.After(100 * time.Millisecond):
	}
}
