// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shipper

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"code.hybscloud.com/logq"
)

// DefaultMaxReadLen is the longest record a Reader emits by default.
const DefaultMaxReadLen = 2048

// Reader pushes newline-delimited records from an input stream into a
// queue. Lines longer than the limit are split into several records.
type Reader struct {
	q       logq.Producer[Record]
	src     io.Reader
	in      *bufio.Reader
	maxLen  int
	buf     []byte
	log     logrus.FieldLogger
	metrics *Metrics
	stats   ReaderStats
}

// NewReader creates a Reader. maxLen <= 0 selects DefaultMaxReadLen.
func NewReader(q logq.Producer[Record], in io.Reader, maxLen int, log logrus.FieldLogger, m *Metrics) *Reader {
	if maxLen <= 0 {
		maxLen = DefaultMaxReadLen
	}
	return &Reader{
		q:       q,
		src:     in,
		maxLen:  maxLen,
		buf:     make([]byte, 0, maxLen),
		log:     log,
		metrics: m,
	}
}

// Run reads until end of input, pushing each record and then the end
// marker. The end marker is also pushed when reading fails or ctx is
// cancelled, so the consumer always stops.
//
// Cancelling ctx interrupts a read blocked on an idle input. The input
// itself is not closed; its pending Read completes in the background.
func (r *Reader) Run(ctx context.Context) error {
	defer r.stats.compute()

	in, stop := interruptible(ctx, r.src)
	defer stop()
	r.in = bufio.NewReader(in)

	for {
		if err := ctx.Err(); err != nil {
			r.finish()
			return err
		}

		line, err := r.readLine()
		if len(line) > 0 {
			start := time.Now()
			if perr := r.push(Record{Line: string(line)}); perr != nil {
				return perr
			}
			r.stats.Total++
			r.stats.Micros += time.Since(start).Microseconds()
			r.metrics.read()
		}

		switch {
		case err == nil:
		case ctx.Err() != nil:
			r.finish()
			return ctx.Err()
		case errors.Is(err, io.EOF):
			r.log.WithField("records", r.stats.Total).Debug("end of input")
			return r.finish()
		default:
			r.finish()
			return fmt.Errorf("read input: %w", err)
		}
	}
}

// Stats returns the counters. Valid after Run returns.
func (r *Reader) Stats() ReaderStats {
	return r.stats
}

// readLine returns the next record: bytes up to and including '\n', or
// maxLen bytes, whichever comes first. The slice is reused by the next
// call.
func (r *Reader) readLine() ([]byte, error) {
	r.buf = r.buf[:0]
	for len(r.buf) < r.maxLen {
		c, err := r.in.ReadByte()
		if err != nil {
			return r.buf, err
		}
		r.buf = append(r.buf, c)
		if c == '\n' {
			break
		}
	}
	return r.buf, nil
}

// interruptible returns a reader over src whose Read fails as soon as ctx
// is done. src is drained by a goroutine through a pipe; stop releases
// the pipe and detaches from ctx.
func interruptible(ctx context.Context, src io.Reader) (io.Reader, func()) {
	pr, pw := io.Pipe()
	go func() {
		_, err := io.Copy(pw, src)
		pw.CloseWithError(err)
	}()
	detach := context.AfterFunc(ctx, func() {
		pr.CloseWithError(ctx.Err())
	})
	return pr, func() {
		detach()
		pr.Close()
	}
}

func (r *Reader) push(rec Record) error {
	if err := r.q.Enqueue(&rec); err != nil {
		return fmt.Errorf("enqueue record: %w", err)
	}
	return nil
}

func (r *Reader) finish() error {
	return r.push(EndOfInput())
}
