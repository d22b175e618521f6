// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// ContentionPolicy selects what an SPMC consumer does after losing the
// divider CAS to another consumer.
type ContentionPolicy uint8

const (
	// RetryOnContention restarts the pop from a fresh divider snapshot.
	// Every element is delivered at most once.
	RetryOnContention ContentionPolicy = iota

	// DeliverOnContention returns the element peeked before the lost CAS.
	// The winner returns the same element, so it may be delivered twice.
	// Kept for compatibility with shippers that tolerate duplicates in
	// exchange for a bounded number of steps per pop.
	DeliverOnContention
)

// String returns the policy name.
func (p ContentionPolicy) String() string {
	switch p {
	case RetryOnContention:
		return "retry"
	case DeliverOnContention:
		return "deliver"
	default:
		return "unknown"
	}
}

// SPMC is an unbounded single-producer multi-consumer linked queue.
//
// Based on the divider-pointer queue of Sutter (DDJ 2008). divider points
// at the last consumed node; the pending elements are the nodes after it
// up to last. Consumers race to CAS divider forward. The producer appends
// at last with a release store and, after each push, walks first up to the
// divider to unlink consumed nodes.
//
// The single-producer rule is carried by [SPMCProducer], issued once by
// [SPMC.Producer]. first and last.next are written without CAS and are
// only correct under that rule.
type SPMC[T any] struct {
	_       pad
	divider atomix.Pointer[divNode[T]] // Last consumed node (consumers CAS)
	_       pad
	last    atomix.Pointer[divNode[T]] // Last appended node (producer stores)
	_       pad
	size    atomix.Int64 // Best-effort item count
	drops   atomix.Int64 // Producer writes with plain load+store
	issued  atomix.Uint64
	_       pad
	first   *divNode[T] // Oldest linked node, producer-owned
	max     int
	policy  ContentionPolicy
}

// peekHook runs in SPMC.Dequeue between the peek and the divider CAS.
// Set only by tests.
var peekHook func()

// NewSPMC creates an SPMC queue with RetryOnContention.
// max <= 0 means unbounded.
func NewSPMC[T any](max int) *SPMC[T] {
	return newSPMC[T](max, RetryOnContention)
}

func newSPMC[T any](max int, policy ContentionPolicy) *SPMC[T] {
	q := &SPMC[T]{max: max, policy: policy}
	if q.max < 0 {
		q.max = 0
	}

	dummy := &divNode[T]{}
	q.first = dummy
	q.divider.StoreRelease(dummy)
	q.last.StoreRelease(dummy)

	return q
}

// Producer issues the queue's single producer handle.
// Panics if a handle was already issued.
func (q *SPMC[T]) Producer() Producer[T] {
	if !q.issued.CompareAndSwapAcqRel(0, 1) {
		panic("logq: SPMC producer already issued")
	}
	return &SPMCProducer[T]{q: q}
}

// Dequeue removes and returns the oldest element. Safe for any number of
// consumers. Returns (zero-value, ErrWouldBlock) if the queue is empty.
//
// Under DeliverOnContention a consumer that loses the divider CAS returns
// the element it peeked, which the winner also returns.
func (q *SPMC[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		div := q.divider.LoadAcquire()
		if div == q.last.LoadAcquire() {
			var zero T
			return zero, ErrWouldBlock
		}

		next := div.next
		elem := next.value
		if peekHook != nil {
			peekHook()
		}

		if q.divider.CompareAndSwapAcqRel(div, next) {
			q.size.AddAcqRel(-1)
			return elem, nil
		}
		if q.policy == DeliverOnContention {
			return elem, nil
		}
		sw.Once()
	}
}

// Len returns the approximate number of queued elements.
func (q *SPMC[T]) Len() int {
	return int(q.size.LoadAcquire())
}

// Drops returns the number of elements discarded by the capacity bound.
func (q *SPMC[T]) Drops() int64 {
	return q.drops.LoadAcquire()
}

// Max returns the capacity bound, 0 when unbounded.
func (q *SPMC[T]) Max() int {
	return q.max
}

// Policy returns the contention policy.
func (q *SPMC[T]) Policy() ContentionPolicy {
	return q.policy
}

// SPMCProducer is the single producer handle of an [SPMC] queue.
//
// Only one handle exists per queue. Overlapping Enqueue calls on it
// (two goroutines sharing the handle) are detected and panic.
type SPMCProducer[T any] struct {
	q        *SPMC[T]
	inflight atomix.Uint64
}

// Enqueue appends an element to the queue. Always returns nil.
// Panics if another Enqueue on this handle is in progress.
func (p *SPMCProducer[T]) Enqueue(elem *T) error {
	if !p.inflight.CompareAndSwapAcqRel(0, 1) {
		panic("logq: concurrent Enqueue on SPMC producer")
	}
	p.q.enqueue(elem)
	p.inflight.StoreRelease(0)
	return nil
}

func (q *SPMC[T]) enqueue(elem *T) {
	if q.max > 0 {
		if n := makeRoom[T](q, q.max); n > 0 {
			// Single writer: no RMW needed.
			q.drops.StoreRelease(q.drops.LoadRelaxed() + n)
		}
	}

	n := &divNode[T]{value: *elem}
	q.last.LoadRelaxed().next = n
	q.last.StoreRelease(n) // publishes n and the link to it
	q.size.AddAcqRel(1)

	// Unlink consumed nodes. Consumers never move divider behind first.
	for q.first != q.divider.LoadAcquire() {
		q.first = q.first.next
	}
}
