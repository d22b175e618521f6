// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logq

// Queue is the combined producer-consumer interface for a FIFO queue.
//
// Dequeue may be called from any number of goroutines. Enqueue is reached
// through Producer, which lets each queue enforce its own producer rule:
// MPMC hands out itself to every caller, SPMC issues exactly one handle.
//
// Len and Drops are best-effort counters. They are updated after the
// structural CAS that changed the list, so under concurrency they may be
// momentarily stale but converge once in-flight operations complete.
//
// Example:
//
//	q := logq.NewMPMC[string](0) // unbounded
//	p := q.Producer()
//
//	line := "hello"
//	_ = p.Enqueue(&line)
//
//	v, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(v)
//	}
type Queue[T any] interface {
	Consumer[T]

	// Producer returns the enqueue side of the queue.
	// SPMC panics when called more than once.
	Producer() Producer[T]

	// Len returns the approximate number of queued items.
	Len() int

	// Drops returns the number of items discarded by the capacity bound.
	Drops() int64

	// Max returns the configured capacity bound, 0 when unbounded.
	Max() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue appends an element to the queue (non-blocking).
	// When the queue is bounded and full, the oldest elements are
	// discarded first and counted in Drops.
	// Always returns nil for the queues in this package.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// Consumer provides non-blocking dequeue operations. The element is returned
// by value. A consumer that wants to wait for data polls outside the queue.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	// May advance a lagging internal pointer even when returning empty.
	Dequeue() (T, error)
}
