package telemetry

import (
	"sync"
	"sync/atomic"
)

// Queue is the bounded buffer between the sampler and the transmitter.
// Push never blocks: when the queue is full the oldest pending Reading is
// discarded to make room, so at any point the queue holds the most recent
// readings in production order. Freshness wins over completeness.
type Queue struct {
	mu      sync.Mutex // serializes Push against concurrent producers
	ch      chan Reading
	dropped atomic.Uint64
}

func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{ch: make(chan Reading, capacity)}
}

// Push enqueues r, evicting the oldest entry if the queue is full.
func (q *Queue) Push(r Reading) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		select {
		case q.ch <- r:
			return
		default:
		}
		// Full: evict the oldest and retry. The consumer may have raced us
		// to it, which is fine — either way a slot is free now.
		select {
		case <-q.ch:
			q.dropped.Add(1)
		default:
		}
	}
}

// Pop blocks until a Reading is available or stop is closed. The second
// return value is false only on shutdown.
func (q *Queue) Pop(stop <-chan struct{}) (Reading, bool) {
	select {
	case r := <-q.ch:
		return r, true
	case <-stop:
		// Pending readings are abandoned on shutdown; delivery after a stop
		// request is not guaranteed.
		return Reading{}, false
	}
}

// Len reports the number of readings currently buffered.
func (q *Queue) Len() int { return len(q.ch) }

// Cap reports the queue capacity.
func (q *Queue) Cap() int { return cap(q.ch) }

// Dropped reports how many readings were evicted due to overflow.
func (q *Queue) Dropped() uint64 { return q.dropped.Load() }
