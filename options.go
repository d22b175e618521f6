// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logq

// Options configures queue creation and algorithm selection.
type Options struct {
	// Producer constraint (determines queue type)
	singleProducer bool

	// SPMC consumer behavior after a lost divider CAS
	policy ContentionPolicy

	// Capacity bound, 0 for unbounded
	max int
}

// Builder creates queues with fluent configuration.
//
// Builder selects the algorithm from the producer constraint:
//
//	// SPMC divider queue (one producer, racing consumers)
//	q := logq.BuildSPMC[Record](logq.New(4096).SingleProducer())
//
//	// MPMC sentinel-node queue (default, general purpose)
//	q := logq.BuildMPMC[Record](logq.New(0))
//
//	// Classic divider behavior: may deliver an element twice
//	q := logq.Build[Record](logq.New(4096).SingleProducer().DeliverOnContention())
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity bound.
//
// max == 0 builds an unbounded queue. With max > 0, Enqueue discards the
// oldest elements until the new one fits, counting each in Drops.
//
// Panics if max < 0.
func New(max int) *Builder {
	if max < 0 {
		panic("logq: max must be >= 0")
	}
	return &Builder{opts: Options{max: max}}
}

// SingleProducer declares that only one goroutine will enqueue.
// Selects the SPMC divider queue.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// DeliverOnContention makes SPMC consumers return the peeked element after
// losing the divider CAS instead of retrying. See [DeliverOnContention].
// Ignored by MPMC.
func (b *Builder) DeliverOnContention() *Builder {
	b.opts.policy = DeliverOnContention
	return b
}

// Build creates a Queue[T] with automatic algorithm selection.
//
// Algorithm selection:
//
//	SingleProducer → SPMC (divider pointer)
//	Otherwise      → MPMC (sentinel node, tail lagging)
//
// For typed returns, use BuildSPMC or BuildMPMC.
func Build[T any](b *Builder) Queue[T] {
	if b.opts.singleProducer {
		return newSPMC[T](b.opts.max, b.opts.policy)
	}
	return NewMPMC[T](b.opts.max)
}

// BuildSPMC creates an SPMC queue with compile-time type safety.
// Panics if builder is not configured with SingleProducer().
func BuildSPMC[T any](b *Builder) *SPMC[T] {
	if !b.opts.singleProducer {
		panic("logq: BuildSPMC requires SingleProducer()")
	}
	return newSPMC[T](b.opts.max, b.opts.policy)
}

// BuildMPMC creates an MPMC queue with compile-time type safety.
// Panics if builder has any constraints set.
func BuildMPMC[T any](b *Builder) *MPMC[T] {
	if b.opts.singleProducer {
		panic("logq: BuildMPMC requires no constraints")
	}
	if b.opts.policy != RetryOnContention {
		panic("logq: BuildMPMC does not take a contention policy")
	}
	return NewMPMC[T](b.opts.max)
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill cache line after two 8-byte fields.
type padShort [64 - 16]byte
