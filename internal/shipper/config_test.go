// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shipper_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/logq"
	"code.hybscloud.com/logq/internal/shipper"
)

const sampleConfig = `
max_queue_size: 500
queue: spmc
contention: deliver
max_read_len: 1024
empty_wait: 250ms
socket_path: /run/test.sock
syslog:
  facility: 3
  severity: 4
  host: edge
  app_name: shipper
  proc_id: "77"
  msg_id: LOG
logging:
  level: debug
  format: json
metrics:
  listen: 127.0.0.1:9100
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logshipper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := shipper.DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Zero(t, cfg.MaxQueueSize)
	require.Equal(t, shipper.QueueSPMC, cfg.Queue)
	require.Equal(t, 2048, cfg.MaxReadLen)
	require.Equal(t, 100*time.Millisecond, cfg.EmptyWait)
	require.Equal(t, "/dev/log", cfg.SocketPath)
	require.Equal(t, shipper.DefaultHeader(), cfg.Syslog)

	q, err := cfg.NewQueue()
	require.NoError(t, err)
	spmc, ok := q.(*logq.SPMC[shipper.Record])
	require.True(t, ok)
	require.Equal(t, logq.RetryOnContention, spmc.Policy())
	require.Zero(t, q.Max())
}

func TestLoadConfig(t *testing.T) {
	cfg, err := shipper.LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, 500, cfg.MaxQueueSize)
	require.Equal(t, "deliver", cfg.Contention)
	require.Equal(t, 1024, cfg.MaxReadLen)
	require.Equal(t, 250*time.Millisecond, cfg.EmptyWait)
	require.Equal(t, "/run/test.sock", cfg.SocketPath)
	require.Equal(t, shipper.Header{Facility: 3, Severity: 4, Host: "edge", AppName: "shipper", ProcID: "77", MsgID: "LOG"}, cfg.Syslog)
	require.Equal(t, "127.0.0.1:9100", cfg.Metrics.Listen)

	q, err := cfg.NewQueue()
	require.NoError(t, err)
	spmc, ok := q.(*logq.SPMC[shipper.Record])
	require.True(t, ok)
	require.Equal(t, logq.DeliverOnContention, spmc.Policy())
	require.Equal(t, 500, spmc.Max())
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	cfg, err := shipper.LoadConfig(writeConfig(t, "queue: mpmc\n"))
	require.NoError(t, err)
	require.Equal(t, shipper.QueueMPMC, cfg.Queue)
	require.Equal(t, shipper.DefaultSocketPath, cfg.SocketPath)

	q, err := cfg.NewQueue()
	require.NoError(t, err)
	_, ok := q.(*logq.MPMC[shipper.Record])
	require.True(t, ok)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := shipper.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = shipper.LoadConfig(writeConfig(t, "queue: [unterminated\n"))
	require.Error(t, err)
}

func TestApplyFileKeepsFlags(t *testing.T) {
	cfg := shipper.DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--queue=mpmc", "--empty-wait=5ms"}))

	require.NoError(t, cfg.ApplyFile(writeConfig(t, sampleConfig), fs))

	require.Equal(t, shipper.QueueMPMC, cfg.Queue, "flag wins over file")
	require.Equal(t, 5*time.Millisecond, cfg.EmptyWait, "flag wins over file")
	require.Equal(t, 500, cfg.MaxQueueSize, "file wins over default")
	require.Equal(t, "edge", cfg.Syslog.Host)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*shipper.Config)
		target error
	}{
		{"negative max", func(c *shipper.Config) { c.MaxQueueSize = -1 }, nil},
		{"queue kind", func(c *shipper.Config) { c.Queue = "ring" }, shipper.ErrQueueKind},
		{"contention", func(c *shipper.Config) { c.Contention = "maybe" }, shipper.ErrContention},
		{"facility", func(c *shipper.Config) { c.Syslog.Facility = 24 }, nil},
		{"severity", func(c *shipper.Config) { c.Syslog.Severity = -1 }, nil},
		{"socket", func(c *shipper.Config) { c.SocketPath = "" }, nil},
		{"log level", func(c *shipper.Config) { c.Logging.Level = "loud" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := shipper.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tt.target != nil {
				require.ErrorIs(t, err, tt.target)
			}
			_, err = cfg.NewQueue()
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := shipper.LoggingConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	require.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("hidden")
	log.WithField("k", "v").Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
	require.Contains(t, buf.String(), `"k":"v"`)
}
