// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shipper_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/logq"
	"code.hybscloud.com/logq/internal/shipper"
)

func TestMetricsQueueCollectors(t *testing.T) {
	q := logq.NewMPMC[shipper.Record](2)
	reg := prometheus.NewRegistry()
	shipper.NewMetrics(reg, q)

	push(q, "a", "b", "c", "d", "e")

	expected := `
# HELP logship_queue_drops_total records discarded by the queue bound
# TYPE logship_queue_drops_total counter
logship_queue_drops_total 3
# HELP logship_queue_length approximate records queued
# TYPE logship_queue_length gauge
logship_queue_length 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"logship_queue_length", "logship_queue_drops_total"))
}

func TestMetricsNilIsNoop(t *testing.T) {
	var m *shipper.Metrics
	q := logq.NewMPMC[shipper.Record](0)
	push(q, "ok\n")
	pushEnd(q)
	w := shipper.NewSyslogWriter(q, &fakeSink{}, shipper.DefaultHeader(), 0, quietLogger(), m)
	require.NotPanics(t, func() { _ = w.Run(t.Context()) })
}
