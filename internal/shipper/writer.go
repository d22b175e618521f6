// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shipper

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"code.hybscloud.com/logq"
)

// DefaultEmptyWait is how long a SyslogWriter sleeps on an empty queue.
const DefaultEmptyWait = 100 * time.Millisecond

type outcome uint8

const (
	delivered outcome = iota
	partial
	failed
)

// SyslogWriter drains a queue into a datagram sink as syslog lines.
type SyslogWriter struct {
	q       logq.Consumer[Record]
	sink    io.Writer
	header  Header
	wait    time.Duration
	buf     []byte
	log     logrus.FieldLogger
	metrics *Metrics
	stats   WriterStats
}

// NewSyslogWriter creates a SyslogWriter. wait <= 0 selects
// DefaultEmptyWait. sink should not block; see DialDatagram.
func NewSyslogWriter(q logq.Consumer[Record], sink io.Writer, h Header, wait time.Duration, log logrus.FieldLogger, m *Metrics) *SyslogWriter {
	if wait <= 0 {
		wait = DefaultEmptyWait
	}
	return &SyslogWriter{
		q:       q,
		sink:    sink,
		header:  h,
		wait:    wait,
		buf:     make([]byte, 0, 512),
		log:     log,
		metrics: m,
	}
}

// Run ships records until the end marker arrives or ctx is cancelled.
// Write failures are counted and never returned.
func (w *SyslogWriter) Run(ctx context.Context) error {
	defer w.stats.compute()

	timer := time.NewTimer(w.wait)
	defer timer.Stop()

	for {
		rec, err := w.q.Dequeue()
		if err != nil {
			if !logq.IsWouldBlock(err) {
				return fmt.Errorf("dequeue: %w", err)
			}
			timer.Reset(w.wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
			continue
		}
		if rec.IsEnd() {
			w.log.WithField("records", w.stats.Total).Debug("end marker received")
			return nil
		}

		start := time.Now()
		o := w.ship(start, rec.Line)
		w.stats.Micros += time.Since(start).Microseconds()
		w.metrics.written(o)
	}
}

// Stats returns the counters. Valid after Run returns.
func (w *SyslogWriter) Stats() WriterStats {
	return w.stats
}

func (w *SyslogWriter) ship(ts time.Time, line string) outcome {
	w.stats.Total++
	w.buf = w.header.AppendLine(w.buf[:0], ts, line)

	n, err := w.sink.Write(w.buf)
	switch {
	case err != nil:
		w.stats.Drops++
		w.log.WithError(err).Debug("datagram dropped")
		return failed
	case n != len(w.buf):
		w.stats.Partials++
		return partial
	default:
		w.stats.Delivered++
		return delivered
	}
}
