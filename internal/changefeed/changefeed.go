// Package changefeed publishes store writes to interested subscribers so
// clients can re-run their queries when the underlying collections change.
package changefeed

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Collection names one of the keyed collections in the store.
type Collection string

const (
	CollectionShows       Collection = "shows"
	CollectionTimeEntries Collection = "time_entries"
	CollectionExpenses    Collection = "expenses"
	CollectionReceipts    Collection = "receipts"
)

// Op is the kind of write that happened.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
	OpSynced  Op = "synced"
)

// Change describes a single write against a collection.
type Change struct {
	Collection Collection `json:"collection"`
	Op         Op         `json:"op"`
	ShowID     string     `json:"show_id"`
	ID         string     `json:"id"`
	At         time.Time  `json:"at"`
}

// Publisher accepts change notifications.
type Publisher interface {
	Publish(change Change)
}

type subscriber struct {
	showID string
	ch     chan Change
}

// Broker fans changes out to subscribers. Publishing never blocks: a
// subscriber whose buffer is full misses the change.
type Broker struct {
	mu      sync.Mutex
	subs    map[int]*subscriber
	nextID  int
	buffer  int
	dropped int64
	logger  *slog.Logger
}

// DefaultBuffer is the per-subscriber buffer used when none is given.
const DefaultBuffer = 64

// NewBroker creates a broker with the given per-subscriber buffer size.
func NewBroker(buffer int, logger *slog.Logger) *Broker {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broker{
		subs:   make(map[int]*subscriber),
		buffer: buffer,
		logger: logger,
	}
}

// Publish delivers the change to every matching subscriber.
func (b *Broker) Publish(change Change) {
	if change.At.IsZero() {
		change.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if sub.showID != "" && sub.showID != change.ShowID {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			b.dropped++
			if b.logger != nil {
				b.logger.Debug("change dropped for slow subscriber", "collection", change.Collection, "show_id", change.ShowID)
			}
		}
	}
}

// Subscribe returns a channel of changes for one show, or for all shows when
// showID is empty. The channel is closed once ctx is done.
func (b *Broker) Subscribe(ctx context.Context, showID string) <-chan Change {
	sub := &subscriber{showID: showID, ch: make(chan Change, b.buffer)}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(sub.ch)
		b.mu.Unlock()
	}()

	return sub.ch
}

// Dropped reports how many changes were discarded for slow subscribers.
func (b *Broker) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Subscribers reports the number of live subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
