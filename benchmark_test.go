// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logq_test

import (
	"runtime"
	"testing"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/logq"
	"code.hybscloud.com/spin"
)

// =============================================================================
// Single-Goroutine Baselines
// =============================================================================

func BenchmarkMPMC_SingleOp(b *testing.B) {
	q := logq.NewMPMC[int](0)

	b.ResetTimer()
	for i := range b.N {
		v := i
		q.Enqueue(&v)
		q.Dequeue()
	}
}

func BenchmarkSPMC_SingleOp(b *testing.B) {
	q := logq.NewSPMC[int](0)
	p := q.Producer()

	b.ResetTimer()
	for i := range b.N {
		v := i
		p.Enqueue(&v)
		q.Dequeue()
	}
}

func BenchmarkMPMC_Bounded(b *testing.B) {
	q := logq.NewMPMC[int](1024)

	b.ResetTimer()
	for i := range b.N {
		v := i
		q.Enqueue(&v)
	}
	b.ReportMetric(float64(q.Drops())/float64(b.N), "drops/op")
}

func BenchmarkSPMC_Bounded(b *testing.B) {
	q := logq.NewSPMC[int](1024)
	p := q.Producer()

	b.ResetTimer()
	for i := range b.N {
		v := i
		p.Enqueue(&v)
	}
	b.ReportMetric(float64(q.Drops())/float64(b.N), "drops/op")
}

// =============================================================================
// Contended
// =============================================================================

func BenchmarkMPMC_Parallel(b *testing.B) {
	q := logq.NewMPMC[int](0)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		v := 1
		for pb.Next() {
			q.Enqueue(&v)
			q.Dequeue()
		}
	})
}

// BenchmarkSPMC_ParallelConsumers measures one producer feeding
// GOMAXPROCS consumers.
func BenchmarkSPMC_ParallelConsumers(b *testing.B) {
	for _, policy := range []logq.ContentionPolicy{logq.RetryOnContention, logq.DeliverOnContention} {
		b.Run(policy.String(), func(b *testing.B) {
			builder := logq.New(0).SingleProducer()
			if policy == logq.DeliverOnContention {
				builder.DeliverOnContention()
			}
			q := logq.BuildSPMC[int](builder)
			p := q.Producer()
			var stop atomix.Bool

			go func() {
				v := 1
				sw := spin.Wait{}
				for !stop.Load() {
					if q.Len() > 4096 {
						sw.Once()
						continue
					}
					p.Enqueue(&v)
				}
			}()

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					for {
						if _, err := q.Dequeue(); err == nil {
							break
						}
						runtime.Gosched()
					}
				}
			})
			b.StopTimer()
			stop.Store(true)
		})
	}
}
