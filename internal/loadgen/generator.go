// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package loadgen writes numbered synthetic log lines at a fixed rate.
package loadgen

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ErrLength is returned by Run for a negative Length.
var ErrLength = errors.New("line length must be >= 0")

// Generator emits lines of the form "<i> <payload>\n" with i counting
// from 1 and payload Length bytes of 'a'.
//
// With Rate > 0 line i is written no earlier than start + i/Rate, so a
// slow write is caught up on rather than shifting every later line.
// Rate 0 writes as fast as out accepts. Limit 0 runs until ctx is done.
type Generator struct {
	Length int
	Rate   float64
	Limit  int64

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Run writes lines to out until Limit lines were written, ctx is done, or
// a write fails. It returns the number of lines written. Reaching Limit
// returns a nil error; cancellation returns ctx.Err().
func (g *Generator) Run(ctx context.Context, out io.Writer) (int64, error) {
	if g.Length < 0 {
		return 0, fmt.Errorf("%w: %d", ErrLength, g.Length)
	}
	now, sleep := g.now, g.sleep
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = sleepCtx
	}

	w := bufio.NewWriter(out)
	payload := strings.Repeat("a", g.Length)
	line := make([]byte, 0, g.Length+24)

	var interval time.Duration
	if g.Rate > 0 {
		interval = time.Duration(float64(time.Second) / g.Rate)
	}

	start := now()
	var i int64
	for g.Limit == 0 || i < g.Limit {
		if err := ctx.Err(); err != nil {
			return i, flushed(w, err)
		}
		i++

		if interval > 0 {
			due := start.Add(time.Duration(i) * interval)
			if d := due.Sub(now()); d > 0 {
				if err := w.Flush(); err != nil {
					return i - 1, fmt.Errorf("write: %w", err)
				}
				if err := sleep(ctx, d); err != nil {
					return i - 1, err
				}
			}
		}

		line = strconv.AppendInt(line[:0], i, 10)
		line = append(line, ' ')
		line = append(line, payload...)
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return i - 1, fmt.Errorf("write: %w", err)
		}
	}
	return i, flushed(w, nil)
}

func flushed(w *bufio.Writer, err error) error {
	if ferr := w.Flush(); ferr != nil && err == nil {
		return fmt.Errorf("write: %w", ferr)
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
