// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shipper

import "github.com/prometheus/client_golang/prometheus"

// QueueStats is the read-only view of a queue exported as metrics.
type QueueStats interface {
	Len() int
	Drops() int64
}

// Metrics holds the pipeline's Prometheus collectors.
// A nil *Metrics records nothing.
type Metrics struct {
	Read      prometheus.Counter
	Delivered prometheus.Counter
	Partial   prometheus.Counter
	Failed    prometheus.Counter
}

// NewMetrics creates the pipeline collectors, plus queue length and drop
// collectors sampled from q, and registers them all on reg.
func NewMetrics(reg prometheus.Registerer, q QueueStats) *Metrics {
	m := &Metrics{
		Read:      prometheus.NewCounter(prometheus.CounterOpts{Name: "logship_read_total", Help: "records read from input"}),
		Delivered: prometheus.NewCounter(prometheus.CounterOpts{Name: "logship_delivered_total", Help: "datagrams fully written"}),
		Partial:   prometheus.NewCounter(prometheus.CounterOpts{Name: "logship_partial_total", Help: "datagrams written short"}),
		Failed:    prometheus.NewCounter(prometheus.CounterOpts{Name: "logship_write_failed_total", Help: "datagrams lost to write errors"}),
	}
	queued := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: "logship_queue_length", Help: "approximate records queued"},
		func() float64 { return float64(q.Len()) },
	)
	drops := prometheus.NewCounterFunc(
		prometheus.CounterOpts{Name: "logship_queue_drops_total", Help: "records discarded by the queue bound"},
		func() float64 { return float64(q.Drops()) },
	)
	reg.MustRegister(m.Read, m.Delivered, m.Partial, m.Failed, queued, drops)
	return m
}

func (m *Metrics) read() {
	if m != nil {
		m.Read.Inc()
	}
}

func (m *Metrics) written(o outcome) {
	if m == nil {
		return
	}
	switch o {
	case delivered:
		m.Delivered.Inc()
	case partial:
		m.Partial.Inc()
	case failed:
		m.Failed.Inc()
	}
}
