// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logq provides unbounded lock-free linked FIFO queues with an
// optional drop-oldest capacity bound.
//
// The queues are the hand-off buffer between the reading and the shipping
// side of a log pipeline, where a producer must never block and losing
// the oldest records under sustained overload is preferred to unbounded
// memory growth.
//
// Two algorithms are available:
//
//   - MPMC: Multi-Producer Multi-Consumer (sentinel node, lagging tail)
//   - SPMC: Single-Producer Multi-Consumer (divider pointer)
//
// # Quick Start
//
// Direct constructors:
//
//	q := logq.NewMPMC[Record](0)    // unbounded
//	q := logq.NewSPMC[Record](4096) // at most 4096 queued records
//
// Builder API selects the algorithm from the producer constraint:
//
//	q := logq.Build[Record](logq.New(4096).SingleProducer()) // → SPMC
//	q := logq.Build[Record](logq.New(4096))                  // → MPMC
//
// # Basic Usage
//
// Enqueue goes through a Producer, Dequeue is on the queue itself:
//
//	q := logq.NewSPMC[string](1024)
//	p := q.Producer() // SPMC issues exactly one producer
//
//	line := "disk full"
//	p.Enqueue(&line) // never fails, never blocks
//
//	v, err := q.Dequeue()
//	if logq.IsWouldBlock(err) {
//	    // Queue is empty - poll again later
//	}
//
// # Common Patterns
//
// Reader → Shipper (SPMC):
//
//	q := logq.NewSPMC[Record](maxQueued)
//	p := q.Producer()
//
//	go func() { // Reader (the only producer)
//	    for sc.Scan() {
//	        rec := Record{Line: sc.Text()}
//	        p.Enqueue(&rec)
//	    }
//	}()
//
//	go func() { // Shipper
//	    for {
//	        rec, err := q.Dequeue()
//	        if err != nil {
//	            time.Sleep(100 * time.Millisecond)
//	            continue
//	        }
//	        ship(rec)
//	    }
//	}()
//
// Fan-in from many sources (MPMC):
//
//	q := logq.NewMPMC[Event](0)
//
//	for src := range slices.Values(sources) {
//	    go func(s Source) {
//	        for ev := range s.Events() {
//	            q.Enqueue(&ev)
//	        }
//	    }(src)
//	}
//
// # Capacity Bound
//
// With max > 0, Enqueue first discards the oldest elements until the new
// one fits, counting each discard in Drops:
//
//	q := logq.NewMPMC[int](3)
//	for i := range 5 {
//	    q.Enqueue(&i)
//	}
//	q.Len()   // 3 (elements 2, 3, 4)
//	q.Drops() // 2
//
// The bound is advisory: the room check and the insert are separate steps,
// so concurrent producers may briefly exceed or under-shoot it.
//
// Len and Drops are best-effort counters updated after the structural
// CAS. They may read stale under concurrency and converge once in-flight
// operations complete.
//
// # SPMC Contention Policy
//
// An SPMC consumer peeks the next element, then CASes the divider past it.
// When two consumers peek the same element only one CAS succeeds. The
// policy decides what the loser does:
//
//	RetryOnContention   - retry from a fresh snapshot (default, at most once)
//	DeliverOnContention - return the peeked element anyway (may duplicate)
//
// DeliverOnContention matches the classic divider queue, where a lost
// CAS is not rechecked, and is selected with Builder.DeliverOnContention.
//
// # Thread Safety
//
//   - MPMC: Multiple producer and consumer goroutines
//   - SPMC: One producer goroutine, multiple consumer goroutines
//
// SPMC enforces its rule: Producer panics when called twice, and the
// returned handle panics if two Enqueue calls overlap.
//
// # Progress and Reclamation
//
// Every operation either completes or loses a CAS race to an operation
// that made progress, then retries: both queues are lock-free, not
// wait-free. Nothing blocks; a consumer that wants to wait polls outside.
//
// Unlinked nodes are reclaimed by the garbage collector, which never frees
// a node that a lagging goroutine still references. Nodes are never
// recycled, so the pointer CASes are free from ABA. MPMC clears the value
// of each popped node and SPMC advances its first pointer on push, so
// consumed elements and unlinked nodes become collectable promptly.
//
// # Race Detection
//
// The queues synchronize only through atomix pointers and counters, which
// fall back to sync/atomic under -race so the detector sees every edge.
// Stress tests run under -race with reduced iteration counts (see
// [RaceEnabled]).
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for pointers and counters with explicit
// memory ordering,
// and [code.hybscloud.com/spin] for CPU pause between CAS retries.
package logq
