package events

import (
	"sync/atomic"

	"github.com/muhvarriel/neural-particles/constants"
)

// Queue is a lock-free MPSC ring buffer for navigation events.
//
// Thread-Safety:
//   - Push: lock-free CAS, multiple producers OK (inference goroutine and the
//     keyboard input goroutine both push)
//   - Consume: single consumer (render loop)
//   - Published flags prevent reading partial writes
//
// Overflow: oldest events overwritten when full. Navigation is last-intent-wins,
// so losing stale events under a burst is acceptable
type Queue struct {
	events    [constants.EventQueueSize]Event
	published [constants.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // read index
	tail      atomic.Uint64 // write index

	// Consume scratch, reused across calls; single consumer makes this safe
	scratch [constants.EventQueueSize]Event
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an event using CAS with published flags. O(1) amortized
func (q *Queue) Push(event Event) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & constants.EventBufferMask

			q.events[idx] = event
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread events
			currentHead := q.head.Load()
			if nextTail-currentHead > constants.EventQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-constants.EventQueueSize)
			}
			return
		}
	}
}

// Consume drains all published events in FIFO order. The returned slice is
// backed by internal scratch storage and is only valid until the next call
func (q *Queue) Consume() []Event {
	n := 0
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()
		if currentHead >= currentTail || n >= constants.EventQueueSize {
			break
		}

		idx := currentHead & constants.EventBufferMask
		if !q.published[idx].Load() {
			// Slot claimed but not yet written; stop here, pick it up next tick
			break
		}

		q.scratch[n] = q.events[idx]
		q.published[idx].Store(false)
		q.head.Store(currentHead + 1)
		n++
	}
	return q.scratch[:n]
}
