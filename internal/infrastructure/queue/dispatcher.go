package queue

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Sink delivers one event to its destination.
type Sink interface {
	Deliver(ctx context.Context, event domain.BlogEvent) error
}

// Dispatcher routes blog events to a fixed set of workers keyed by post id,
// guaranteeing per-post event ordering. It implements ports.EventPublisher.
type Dispatcher struct {
	workers []chan domain.BlogEvent
	sink    Sink
	log     zerolog.Logger
	// OnDrop, when set, is called for every event discarded on a full queue.
	OnDrop func(domain.BlogEvent)

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.BlogEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.BlogEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Stop has drained their queues.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands the event to the worker responsible for its post. It never
// blocks: when that worker's queue is full the event is dropped and logged.
func (d *Dispatcher) Publish(event domain.BlogEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.workers[d.shardIndex(event)] <- event:
	default:
		d.log.Warn().Str("type", string(event.Type)).Int64("post_id", event.PostID).Msg("event queue full, dropping event")
		if d.OnDrop != nil {
			d.OnDrop(event)
		}
	}
}

// Stop refuses new events, lets the workers drain what is queued and waits
// for them to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps an event deterministically to a worker index. Events
// without a post (user.registered) are spread by user id instead.
func (d *Dispatcher) shardIndex(event domain.BlogEvent) int {
	key := event.PostID
	if key == 0 {
		key = event.UserID
	}
	if key < 0 {
		key = -key
	}
	return int(key % int64(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.BlogEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Deliver(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("type", string(event.Type)).
					Int64("post_id", event.PostID).
					Int("worker_id", id).
					Msg("event delivery failed")
			}
		}
	}
}
