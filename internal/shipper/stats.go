// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shipper

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// ReaderStats counts what a Reader pushed.
type ReaderStats struct {
	Total     int64   // Records pushed, end marker excluded
	Micros    int64   // Cumulative microseconds spent enqueueing
	AvgMicros float64 // Micros / Total, rounded to 2 decimals
}

// WriterStats counts how a SyslogWriter's writes ended.
type WriterStats struct {
	Total     int64 // Records processed
	Delivered int64 // Full datagram written
	Partials  int64 // Short write
	Drops     int64 // Write error
	Micros    int64 // Cumulative microseconds spent formatting and writing

	DeliveredPct float64
	PartialsPct  float64
	DropsPct     float64
	AvgMicros    float64
}

func (s *ReaderStats) compute() {
	s.AvgMicros = ratio(s.Micros, s.Total, 1, 2)
}

func (s *WriterStats) compute() {
	s.DeliveredPct = ratio(s.Delivered, s.Total, 100, 1)
	s.PartialsPct = ratio(s.Partials, s.Total, 100, 1)
	s.DropsPct = ratio(s.Drops, s.Total, 100, 1)
	s.AvgMicros = ratio(s.Micros, s.Total, 1, 2)
}

// ratio returns scale*n/d rounded to places decimals, 0 when d is 0.
func ratio(n, d int64, scale float64, places int) float64 {
	if d == 0 {
		return 0
	}
	p := math.Pow(10, float64(places))
	return math.Round(float64(n)/float64(d)*scale*p) / p
}

// Report is the outcome of one Manager run.
type Report struct {
	Reader     ReaderStats
	Writer     WriterStats
	QueueDrops int64
	Elapsed    time.Duration
}

// Fields returns the report as structured log fields.
func (r Report) Fields() logrus.Fields {
	return logrus.Fields{
		"elapsed":             r.Elapsed.Round(time.Millisecond).Seconds(),
		"read_total":          r.Reader.Total,
		"read_avg_us":         r.Reader.AvgMicros,
		"write_total":         r.Writer.Total,
		"write_delivered":     r.Writer.Delivered,
		"write_partials":      r.Writer.Partials,
		"write_drops":         r.Writer.Drops,
		"write_delivered_pct": r.Writer.DeliveredPct,
		"write_avg_us":        r.Writer.AvgMicros,
		"queue_drops":         r.QueueDrops,
	}
}

// Summary renders the report for humans.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "elapsed:   %s\n", r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "read:      %s records, %.2fµs/record\n",
		humanize.Comma(r.Reader.Total), r.Reader.AvgMicros)
	fmt.Fprintf(&b, "written:   %s records, %.2fµs/record\n",
		humanize.Comma(r.Writer.Total), r.Writer.AvgMicros)
	fmt.Fprintf(&b, "delivered: %s (%.1f%%)\n", humanize.Comma(r.Writer.Delivered), r.Writer.DeliveredPct)
	fmt.Fprintf(&b, "partial:   %s (%.1f%%)\n", humanize.Comma(r.Writer.Partials), r.Writer.PartialsPct)
	fmt.Fprintf(&b, "failed:    %s (%.1f%%)\n", humanize.Comma(r.Writer.Drops), r.Writer.DropsPct)
	fmt.Fprintf(&b, "queue drops: %s\n", humanize.Comma(r.QueueDrops))
	return b.String()
}
