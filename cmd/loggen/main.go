// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command loggen writes numbered synthetic log lines to standard output,
// for feeding logshipper.
//
//	loggen <length> [rate] [--limit=N]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"code.hybscloud.com/logq/internal/loadgen"
)

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand(out io.Writer) *cobra.Command {
	var g loadgen.Generator
	var verbose bool

	cmd := &cobra.Command{
		Use:   "loggen <length> [rate]",
		Short: "Write numbered lines of a given payload length",
		Long: `Write "<i> <payload>" lines, i counting from 1, payload being length
bytes of 'a'. With a rate, lines are paced at that many per second;
without one they are written as fast as possible.`,
		Args: cobra.RangeArgs(1, 2),
		Example: `  loggen 100 | logshipper
  loggen 512 2000 --limit=100000 | logshipper 5000`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if g.Length, err = strconv.Atoi(args[0]); err != nil || g.Length < 0 {
				return fmt.Errorf("length %q: want a non-negative integer", args[0])
			}
			if len(args) == 2 {
				if g.Rate, err = strconv.ParseFloat(args[1], 64); err != nil || g.Rate < 0 {
					return fmt.Errorf("rate %q: want a non-negative number", args[1])
				}
			}

			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cw := &countingWriter{w: out}
			n, err := g.Run(ctx, cw)
			log.WithFields(logrus.Fields{
				"lines": humanize.Comma(n),
				"bytes": humanize.Bytes(cw.n),
			}).Debug("generator stopped")
			if err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("write failed")
				return err
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&g.Limit, "limit", 0, "stop after this many lines; 0 runs until interrupted")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log a summary to stderr on exit")
	return cmd
}

type countingWriter struct {
	w io.Writer
	n uint64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += uint64(n)
	return n, err
}
