package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// subscriberQueueSize bounds how many un-delivered frames a subscriber may
// have outstanding before Hub starts dropping frames for it. A single
// frame is the size of one compressed chunk snapshot, so this is kept
// small: a slow subscriber should see drops, not unbounded memory growth.
const subscriberQueueSize = 4

// Hub fans a tick's framed bytes out to every subscribed connection.
// Delivery is best-effort and non-blocking per spec.md §4.6: a subscriber
// that can't keep up loses frames, but never slows down or blocks the
// tick that's broadcasting them.
//
// Adapted from the teacher's redstone.Router: same registered-endpoint,
// non-blocking-send-or-drop shape, repointed at broadcast subscribers
// keyed by uuid.UUID instead of chunk workers keyed by ChunkID.
type Hub struct {
	log *slog.Logger

	mu          sync.RWMutex
	subscribers map[uuid.UUID]chan []byte

	dropped atomic.Uint64
}

// NewHub returns an empty Hub. log may be nil, in which case slog.Default
// is used.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{log: log, subscribers: make(map[uuid.UUID]chan []byte)}
}

// Subscribe registers a new subscriber and returns its id, the channel it
// will receive frames on, and a function to unsubscribe it. The returned
// channel is never closed by the Hub; callers should stop reading from it
// once they call the returned unsubscribe function.
func (h *Hub) Subscribe() (uuid.UUID, <-chan []byte, func()) {
	id := uuid.New()
	ch := make(chan []byte, subscriberQueueSize)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	return id, ch, func() { h.unsubscribe(id) }
}

func (h *Hub) unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	delete(h.subscribers, id)
	h.mu.Unlock()
}

// SubscriberCount returns the number of currently registered subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// DroppedFrames returns the cumulative count of frames dropped across all
// subscribers because their queue was full.
func (h *Hub) DroppedFrames() uint64 { return h.dropped.Load() }

// Broadcast fans frame out to every subscriber concurrently, bounding the
// fan-out goroutines with an errgroup so a broadcast to many subscribers
// doesn't spawn unbounded goroutines per tick. A subscriber whose queue is
// full has the frame dropped for it only; Broadcast itself never blocks on
// a slow subscriber and never returns an error (delivery is best-effort).
func (h *Hub) Broadcast(ctx context.Context, frame []byte) {
	h.mu.RLock()
	targets := make([]chan []byte, 0, len(h.subscribers))
	for _, ch := range h.subscribers {
		targets = append(targets, ch)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	const maxFanoutGoroutines = 16
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxFanoutGoroutines)
	for _, ch := range targets {
		ch := ch
		g.Go(func() error {
			select {
			case ch <- frame:
			default:
				h.dropped.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()
}
