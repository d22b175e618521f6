// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command logshipper forwards lines from standard input to the local
// syslog socket through a lock-free queue.
//
//	logshipper [max-queue-size] [flags]
//
// A max queue size of 0, or none, leaves the queue unbounded. When the
// bound is reached the oldest queued lines are discarded.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"code.hybscloud.com/logq/internal/shipper"
)

func main() {
	if err := newCommand(os.Stdin).Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand(in io.Reader) *cobra.Command {
	cfg := shipper.DefaultConfig()
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "logshipper [max-queue-size]",
		Short: "Ship standard input to syslog over a unix datagram socket",
		Args:  cobra.MaximumNArgs(1),
		Example: `  myapp | logshipper
  myapp | logshipper 10000 --queue=mpmc
  loggen 100 5000 | logshipper 1000 --socket=/run/systemd/journal/syslog`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				if err := cfg.ApplyFile(cfgPath, cmd.Flags()); err != nil {
					return err
				}
			}
			if len(args) == 1 {
				n, err := parseMaxQueueSize(args[0])
				if err != nil {
					return err
				}
				cfg.MaxQueueSize = n
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, in, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a YAML configuration file")
	cfg.BindFlags(cmd.Flags())
	return cmd
}

func parseMaxQueueSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("max queue size %q: want a non-negative integer", s)
	}
	return n, nil
}

func run(ctx context.Context, cfg shipper.Config, in io.Reader, out, errOut io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := cfg.Logging.NewLogger(errOut)

	var reg *prometheus.Registry
	if cfg.Metrics.Listen != "" {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		srv := serveMetrics(cfg.Metrics.Listen, reg, log)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	sink, err := shipper.DialDatagram(cfg.SocketPath)
	if err != nil {
		return err
	}
	defer sink.Close()

	var registerer prometheus.Registerer
	if reg != nil {
		registerer = reg
	}
	m, err := shipper.NewManager(cfg, in, sink, log, registerer)
	if err != nil {
		return err
	}

	report, err := m.Run(ctx)
	fmt.Fprint(out, report.Summary())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func serveMetrics(addr string, reg *prometheus.Registry, log logrus.FieldLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.WithField("listen", addr).Info("metrics server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server exited")
		}
	}()
	return srv
}
