// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shipper

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"code.hybscloud.com/logq"
)

// Queue kinds.
const (
	QueueSPMC = "spmc"
	QueueMPMC = "mpmc"
)

var (
	// ErrQueueKind is returned for a queue kind other than spmc or mpmc.
	ErrQueueKind = errors.New("unknown queue kind")

	// ErrContention is returned for a contention policy other than retry
	// or deliver.
	ErrContention = errors.New("unknown contention policy")
)

// Config is the logshipper configuration.
//
// Precedence, lowest first: DefaultConfig, YAML file, flags, the
// positional max queue size.
type Config struct {
	MaxQueueSize int           `yaml:"max_queue_size"` // 0 = unbounded
	Queue        string        `yaml:"queue"`          // spmc | mpmc
	Contention   string        `yaml:"contention"`     // retry | deliver (spmc only)
	MaxReadLen   int           `yaml:"max_read_len"`
	EmptyWait    time.Duration `yaml:"empty_wait"`
	SocketPath   string        `yaml:"socket_path"`
	Syslog       Header        `yaml:"syslog"`
	Logging      LoggingConfig `yaml:"logging"`
	Metrics      MetricsConfig `yaml:"metrics"`
}

// LoggingConfig selects the level and format of the process log.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | text
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty disables the endpoint
}

// DefaultConfig returns an unbounded SPMC pipeline writing to /dev/log.
func DefaultConfig() Config {
	return Config{
		Queue:      QueueSPMC,
		Contention: logq.RetryOnContention.String(),
		MaxReadLen: DefaultMaxReadLen,
		EmptyWait:  DefaultEmptyWait,
		SocketPath: DefaultSocketPath,
		Syslog:     DefaultHeader(),
		Logging:    LoggingConfig{Level: "info", Format: "text"},
	}
}

// BindFlags registers flags writing into c.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Queue, "queue", c.Queue, "queue algorithm: spmc or mpmc")
	fs.StringVar(&c.Contention, "contention", c.Contention, "spmc consumer policy on a lost CAS: retry or deliver")
	fs.IntVar(&c.MaxReadLen, "max-read-len", c.MaxReadLen, "longest record in bytes; longer lines are split")
	fs.DurationVar(&c.EmptyWait, "empty-wait", c.EmptyWait, "writer sleep when the queue is empty")
	fs.StringVar(&c.SocketPath, "socket", c.SocketPath, "unix datagram socket to write to")
	fs.IntVar(&c.Syslog.Facility, "facility", c.Syslog.Facility, "syslog facility code")
	fs.IntVar(&c.Syslog.Severity, "severity", c.Syslog.Severity, "syslog severity code")
	fs.StringVar(&c.Syslog.Host, "host", c.Syslog.Host, "syslog HOSTNAME field")
	fs.StringVar(&c.Syslog.AppName, "app-name", c.Syslog.AppName, "syslog APP-NAME field")
	fs.StringVar(&c.Syslog.ProcID, "proc-id", c.Syslog.ProcID, "syslog PROCID field")
	fs.StringVar(&c.Syslog.MsgID, "msg-id", c.Syslog.MsgID, "syslog MSGID field")
	fs.StringVar(&c.Logging.Level, "log-level", c.Logging.Level, "log level")
	fs.StringVar(&c.Logging.Format, "log-format", c.Logging.Format, "log format: text or json")
	fs.StringVar(&c.Metrics.Listen, "metrics-listen", c.Metrics.Listen, "address for the Prometheus /metrics endpoint")
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if err := c.loadFile(path); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ApplyFile loads the YAML file at path into c while keeping the values of
// flags set on the command line.
func (c *Config) ApplyFile(path string, fs *pflag.FlagSet) error {
	changed := map[string]string{}
	fs.Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})

	if err := c.loadFile(path); err != nil {
		return err
	}

	for name, v := range changed {
		if err := fs.Set(name, v); err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.MaxQueueSize < 0 {
		return fmt.Errorf("max queue size %d: must be >= 0", c.MaxQueueSize)
	}
	if c.Queue != QueueSPMC && c.Queue != QueueMPMC {
		return fmt.Errorf("%w: %q", ErrQueueKind, c.Queue)
	}
	if _, err := c.policy(); err != nil {
		return err
	}
	if c.Syslog.Facility < 0 || c.Syslog.Facility > 23 {
		return fmt.Errorf("syslog facility %d: must be in [0, 23]", c.Syslog.Facility)
	}
	if c.Syslog.Severity < 0 || c.Syslog.Severity > 7 {
		return fmt.Errorf("syslog severity %d: must be in [0, 7]", c.Syslog.Severity)
	}
	if c.SocketPath == "" {
		return errors.New("socket path is empty")
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

func (c Config) policy() (logq.ContentionPolicy, error) {
	switch c.Contention {
	case logq.RetryOnContention.String(), "":
		return logq.RetryOnContention, nil
	case logq.DeliverOnContention.String():
		return logq.DeliverOnContention, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrContention, c.Contention)
	}
}

// NewQueue builds the configured queue.
func (c Config) NewQueue() (logq.Queue[Record], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	b := logq.New(c.MaxQueueSize)
	if c.Queue == QueueMPMC {
		return logq.Build[Record](b), nil
	}
	b.SingleProducer()
	if p, _ := c.policy(); p == logq.DeliverOnContention {
		b.DeliverOnContention()
	}
	return logq.Build[Record](b), nil
}

// NewLogger returns a logrus logger writing to out as configured.
func (l LoggingConfig) NewLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	if l.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if lvl, err := logrus.ParseLevel(l.Level); err == nil {
		log.SetLevel(lvl)
	}
	return log
}
