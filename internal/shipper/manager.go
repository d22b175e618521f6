// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shipper

import (
	"context"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/logq"
)

// Manager runs one Reader and one SyslogWriter over a shared queue.
type Manager struct {
	queue  logq.Queue[Record]
	reader *Reader
	writer *SyslogWriter
	log    logrus.FieldLogger
}

// NewManager builds the queue, reader and writer described by cfg.
// Metrics are registered on reg when it is non-nil.
func NewManager(cfg Config, in io.Reader, sink io.Writer, log logrus.FieldLogger, reg prometheus.Registerer) (*Manager, error) {
	q, err := cfg.NewQueue()
	if err != nil {
		return nil, err
	}

	var m *Metrics
	if reg != nil {
		m = NewMetrics(reg, q)
	}

	return &Manager{
		queue:  q,
		reader: NewReader(q.Producer(), in, cfg.MaxReadLen, log.WithField("role", "reader"), m),
		writer: NewSyslogWriter(q, sink, cfg.Syslog, cfg.EmptyWait, log.WithField("role", "writer"), m),
		log:    log,
	}, nil
}

// Queue returns the hand-off queue.
func (m *Manager) Queue() logq.Queue[Record] {
	return m.queue
}

// Run starts the writer and the reader, waits for both and reports.
// The report is filled in even when Run returns an error.
func (m *Manager) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	m.log.WithFields(logrus.Fields{
		"max_queue_size": m.queue.Max(),
		"queue":          queueName(m.queue),
	}).Info("pipeline started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.writer.Run(gctx) })
	g.Go(func() error { return m.reader.Run(gctx) })
	err := g.Wait()

	r := Report{
		Reader:     m.reader.Stats(),
		Writer:     m.writer.Stats(),
		QueueDrops: m.queue.Drops(),
		Elapsed:    time.Since(start),
	}
	entry := m.log.WithFields(r.Fields())
	if err != nil {
		entry.WithError(err).Warn("pipeline stopped")
	} else {
		entry.Info("pipeline finished")
	}
	return r, err
}

func queueName(q logq.Queue[Record]) string {
	switch q := q.(type) {
	case *logq.SPMC[Record]:
		return QueueSPMC + "/" + q.Policy().String()
	case *logq.MPMC[Record]:
		return QueueMPMC
	default:
		return "unknown"
	}
}
