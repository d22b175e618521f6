// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MPMC is an unbounded multi-producer multi-consumer linked queue.
//
// Based on the non-blocking queue of Michael and Scott (PODC 1996). head
// points at a sentinel whose successor is the logical first element; tail
// points at the last node or lags one step behind it while a push is in
// flight. Any goroutine that observes a lagging tail swings it forward
// before retrying (helping), so the queue is lock-free.
//
// Unlinked nodes are left to the garbage collector and never reused, so a
// goroutine holding a stale head or tail can always dereference it and the
// pointer CASes cannot suffer from ABA.
//
// An optional bound (max > 0) discards the oldest items on Enqueue until
// the new item fits. Memory: one node allocation per item.
type MPMC[T any] struct {
	_     pad
	head  atomix.Pointer[node[T]] // Sentinel before the first element
	_     pad
	tail  atomix.Pointer[node[T]] // Last node, possibly lagging
	_     pad
	size  atomix.Int64 // Best-effort item count
	drops atomix.Int64 // Items discarded by the bound
	_     padShort
	max   int
}

// NewMPMC creates an MPMC queue.
// max <= 0 means unbounded.
func NewMPMC[T any](max int) *MPMC[T] {
	q := &MPMC[T]{max: max}
	if q.max < 0 {
		q.max = 0
	}

	sentinel := &node[T]{}
	q.head.StoreRelease(sentinel)
	q.tail.StoreRelease(sentinel)

	return q
}

// Enqueue appends an element to the queue. Safe for any number of
// producers. Always returns nil.
func (q *MPMC[T]) Enqueue(elem *T) error {
	if q.max > 0 {
		if n := makeRoom[T](q, q.max); n > 0 {
			q.drops.AddAcqRel(n)
		}
	}

	n := &node[T]{value: *elem}

	sw := spin.Wait{}
	for {
		tail := q.tail.LoadAcquire()
		next := tail.next.LoadAcquire()

		if tail != q.tail.LoadAcquire() {
			continue
		}

		if next != nil {
			// Tail is lagging: help it forward, then retry immediately.
			q.tail.CompareAndSwapAcqRel(tail, next)
			continue
		}

		if tail.next.CompareAndSwapAcqRel(nil, n) {
			// Failure means another goroutine already swung tail.
			q.tail.CompareAndSwapAcqRel(tail, n)
			q.size.AddAcqRel(1)
			return nil
		}
		sw.Once()
	}
}

// Dequeue removes and returns the oldest element. Safe for any number of
// consumers. Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPMC[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadAcquire()
		tail := q.tail.LoadAcquire()
		next := head.next.LoadAcquire()

		if head != q.head.LoadAcquire() {
			continue
		}

		if head == tail {
			if next == nil {
				var zero T
				return zero, ErrWouldBlock
			}
			q.tail.CompareAndSwapAcqRel(tail, next)
			continue
		}

		if q.head.CompareAndSwapAcqRel(head, next) {
			// next is the new sentinel; only this goroutine touches its value.
			elem := next.value
			var zero T
			next.value = zero
			q.size.AddAcqRel(-1)
			return elem, nil
		}
		sw.Once()
	}
}

// Producer returns q itself. MPMC accepts any number of producers.
func (q *MPMC[T]) Producer() Producer[T] {
	return q
}

// Len returns the approximate number of queued elements.
func (q *MPMC[T]) Len() int {
	return int(q.size.LoadAcquire())
}

// Drops returns the number of elements discarded by the capacity bound.
func (q *MPMC[T]) Drops() int64 {
	return q.drops.LoadAcquire()
}

// Max returns the capacity bound, 0 when unbounded.
func (q *MPMC[T]) Max() int {
	return q.max
}
