// Package tracking collects impression and click telemetry without blocking
// request handling. Events queue in memory and are delivered in batches;
// delivery is best-effort and a failed batch is dropped rather than retried,
// so a flaky backend can never duplicate events or wedge the gateway.
package tracking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"bookvoyage/pkg/domain"
)

const (
	// DefaultBatchSize triggers a flush as soon as this many events queue up.
	DefaultBatchSize = 10
	// DefaultFlushIdle flushes whatever queued once enqueues go quiet.
	DefaultFlushIdle = 5 * time.Second

	sendTimeout = 3 * time.Second
)

// Sender delivers one telemetry batch.
type Sender interface {
	SendTrackingEvents(ctx context.Context, events []domain.TrackingEvent) error
}

// Config wires the collector.
type Config struct {
	Sender    Sender
	BatchSize int
	FlushIdle time.Duration
}

// Collector owns the pending event queue. All mutation goes through its
// methods; the queue is volatile and whatever remains at Close is flushed
// once, best-effort.
type Collector struct {
	sender    Sender
	batchSize int
	flushIdle time.Duration
	now       func() time.Time
	newID     func() string

	mu     sync.Mutex
	queue  []domain.TrackingEvent
	timer  *time.Timer
	closed bool
	wg     sync.WaitGroup
}

// NewCollector constructs a collector with defaults applied.
func NewCollector(cfg Config) *Collector {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	flushIdle := cfg.FlushIdle
	if flushIdle <= 0 {
		flushIdle = DefaultFlushIdle
	}
	return &Collector{
		sender:    cfg.Sender,
		batchSize: batchSize,
		flushIdle: flushIdle,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Identity carries the browser-scoped ids stamped onto every event.
type Identity struct {
	SessionID string
	DeviceID  string
}

// Enqueue stamps a fresh event id, the session and device ids and the
// client timestamp, then appends the event. Reaching the batch size flushes
// exactly that head batch immediately; otherwise the idle timer restarts.
func (c *Collector) Enqueue(id Identity, event domain.TrackingEvent) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	event.EventID = c.newID()
	event.SessionID = id.SessionID
	event.DeviceID = id.DeviceID
	event.ClientTime = c.now().UnixMilli()
	c.queue = append(c.queue, event)

	if len(c.queue) >= c.batchSize {
		batch := c.drainLocked(c.batchSize)
		c.stopTimerLocked()
		c.mu.Unlock()
		c.sendAsync(batch)
		return
	}
	c.resetTimerLocked()
	c.mu.Unlock()
}

// Pending reports the number of queued events.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Close flushes whatever is queued and waits for in-flight deliveries.
// This is the page-teardown path: delivery still happens, but failures are
// dropped silently.
func (c *Collector) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopTimerLocked()
	var batches [][]domain.TrackingEvent
	for len(c.queue) > 0 {
		batches = append(batches, c.drainLocked(c.batchSize))
	}
	c.mu.Unlock()

	for _, batch := range batches {
		c.send(batch)
	}
	c.wg.Wait()
}

func (c *Collector) flushIdleNow() {
	c.mu.Lock()
	if c.closed || len(c.queue) == 0 {
		c.mu.Unlock()
		return
	}
	batch := c.drainLocked(c.batchSize)
	if len(c.queue) > 0 {
		// More than a batch accumulated while idle; keep the timer running
		// for the remainder.
		c.resetTimerLocked()
	}
	c.mu.Unlock()
	c.sendAsync(batch)
}

// drainLocked removes and returns up to n events from the head of the queue.
func (c *Collector) drainLocked(n int) []domain.TrackingEvent {
	if n > len(c.queue) {
		n = len(c.queue)
	}
	batch := make([]domain.TrackingEvent, n)
	copy(batch, c.queue[:n])
	c.queue = c.queue[n:]
	return batch
}

func (c *Collector) resetTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.flushIdle, c.flushIdleNow)
}

func (c *Collector) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Collector) sendAsync(batch []domain.TrackingEvent) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.send(batch)
	}()
}

func (c *Collector) send(batch []domain.TrackingEvent) {
	if len(batch) == 0 || c.sender == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := c.sender.SendTrackingEvents(ctx, batch); err != nil {
		// Best-effort delivery: dropped, never retried.
		slog.Debug("tracking batch dropped", "events", len(batch), "err", err)
	}
}
