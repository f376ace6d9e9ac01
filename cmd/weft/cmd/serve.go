package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/go-drift/weft/pkg/engine"
	"github.com/go-drift/weft/pkg/event"
)

func init() {
	register(serveCmd())
}

func serveCmd() *cobra.Command {
	var (
		addr    string
		metrics bool
		tick    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a demo and serve its debug endpoints",
		Long: `Run the demo against a headless window until interrupted and serve
/health, /tree, /frames, /frames/stream, /runtime and, when metrics are
enabled, /metrics over HTTP.

With --tick the demo receives a timer event at that interval, so frame
statistics keep flowing while nothing else drives the window.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			s, err := newSession(cmd, engine.WithMetrics(reg))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				s.cfg.DebugAddr = addr
			}
			if cmd.Flags().Changed("metrics") {
				s.cfg.Metrics = metrics
			}
			var gatherer prometheus.Gatherer
			if s.cfg.Metrics {
				gatherer = reg
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := engine.NewDebugServer(s.app, gatherer)
			bound, err := server.Start(s.cfg.DebugAddr)
			if err != nil {
				return err
			}
			defer server.Stop()
			fmt.Fprintf(cmd.OutOrStdout(), "serving %s on http://%s\n", s.demo.Name, bound)

			events := make(chan event.Event)
			if tick > 0 {
				go func() {
					ticker := time.NewTicker(tick)
					defer ticker.Stop()
					for {
						select {
						case <-ctx.Done():
							return
						case <-ticker.C:
							select {
							case events <- event.Timer{}:
							case <-ctx.Done():
								return
							}
						}
					}
				}()
			}

			err = s.app.Run(ctx, s.window, events)
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			s.logger.Info("serve stopped", slog.Int("frames", s.app.Frames().Count()))
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:9464)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "serve Prometheus metrics on /metrics")
	cmd.Flags().DurationVar(&tick, "tick", 0, "deliver a timer event at this interval")
	return cmd
}
