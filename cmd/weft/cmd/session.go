package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/go-drift/weft/cmd/weft/internal/config"
	"github.com/go-drift/weft/cmd/weft/internal/demo"
	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/engine"
	"github.com/go-drift/weft/pkg/errors"
	"github.com/go-drift/weft/pkg/platform"
	"github.com/go-drift/weft/pkg/theme"
)

// session is a resolved configuration together with the app and window it
// describes. The window is not connected yet.
type session struct {
	cfg    *config.Resolved
	logger *slog.Logger
	demo   demo.Demo
	app    *engine.App
	window *platform.Headless
}

// newSession resolves configuration for cmd and builds the app. extra
// options are appended after the configured ones.
func newSession(cmd *cobra.Command, extra ...engine.Option) (*session, error) {
	dir := flags.dir
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return nil, err
		}
		dir = root
	}

	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: cfg.Debug})
	core.SetDebugMode(cfg.Debug)
	theme.SetCurrent(theme.ForBrightness(cfg.Brightness))

	d, err := demo.Lookup(cfg.Demo)
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	if cfg.MaxPasses > 0 {
		opts = append(opts, engine.WithMaxPasses(cfg.MaxPasses))
	}
	if cfg.FrameHistory > 0 {
		opts = append(opts, engine.WithFrameHistory(cfg.FrameHistory))
	}
	opts = append(opts, extra...)

	logger.Debug("session resolved",
		slog.String("root", cfg.Root),
		slog.String("title", cfg.Title),
		slog.String("demo", d.Name),
		slog.String("theme", cfg.Brightness.String()),
	)

	return &session{
		cfg:    cfg,
		logger: logger,
		demo:   d,
		app:    engine.New(d.Build, opts...),
		window: platform.NewHeadless(cfg.Size),
	}, nil
}

// applyFlags overrides cfg with the persistent flags the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Resolved) error {
	f := cmd.Flags()
	if f.Changed("demo") {
		cfg.Demo = flags.demo
	}
	if f.Changed("log-level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(flags.logLevel)); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	if f.Changed("width") || f.Changed("height") {
		size := cfg.Size
		if f.Changed("width") {
			size.Width = float64(flags.width)
		}
		if f.Changed("height") {
			size.Height = float64(flags.height)
		}
		if size.Width <= 0 || size.Height <= 0 {
			return fmt.Errorf("window size must be positive (got %gx%g)", size.Width, size.Height)
		}
		cfg.Size = size
	}
	return nil
}

// connect connects the window, which builds and paints the first frame.
func (s *session) connect() {
	s.app.Connect(s.window)
}
