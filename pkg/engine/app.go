// Package engine drives a [core.Tree] against a platform window.
//
// An [App] owns the tree and the application's description function. For
// every platform event it routes the event through the tree, resolves the
// focus and cursor requests that bubbled up, runs build passes until the
// description stops consuming actions, and then lays out and paints the
// window if anything asked for it. All of this happens on the goroutine that
// calls [App.HandleEvent], [App.Frame] or [App.Run]; [App.Dispatch] is the
// only method safe to call from elsewhere.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/errors"
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/platform"
	"github.com/go-drift/weft/pkg/theme"
)

const tracerName = "weft"

// Option configures an [App].
type Option func(*config)

type config struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	tracer     trace.Tracer
	maxPasses  int
	background *graphics.Color
	history    int
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics registers the engine's Prometheus collectors with reg.
// Without it no metrics are recorded.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = reg
	}
}

// WithTracer sets the tracer used for per-dispatch spans. Defaults to the
// global OpenTelemetry provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// WithMaxPasses bounds the number of build passes per dispatch. Zero, the
// default, leaves the loop unbounded. Hitting the limit is reported as a
// [errors.ConvergenceError].
func WithMaxPasses(n int) Option {
	return func(c *config) {
		c.maxPasses = n
	}
}

// WithBackground fixes the color each frame is cleared to. By default the
// current theme's background is used.
func WithBackground(color graphics.Color) Option {
	return func(c *config) {
		c.background = &color
	}
}

// WithFrameHistory sets how many [FrameStats] are retained.
func WithFrameHistory(n int) Option {
	return func(c *config) {
		c.history = n
	}
}

// App runs a description function against one window.
type App struct {
	build func(cx *core.Cx)
	tree  *core.Tree
	cfg   config

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *metrics
	frames  *FrameBuffer

	window platform.Window
	size   graphics.Size
	base   context.Context

	focus       core.ChildID
	cursor      platform.Cursor
	hasCursor   bool
	closed      bool
	seq         uint64
	totals      core.BuildStats
	invalid     graphics.Region
	needsPass   bool
	needsLayout bool
	needsPaint  bool

	dispatchMu    sync.Mutex
	dispatchQueue []func()
	wake          chan struct{}

	publish  atomic.Bool
	snapshot atomic.Pointer[TreeSnapshot]
}

// TreeSnapshot is an immutable copy of the tree published after a dispatch.
type TreeSnapshot struct {
	Seq    uint64              `json:"seq"`
	Focus  core.ChildID        `json:"focus"`
	Size   graphics.Size       `json:"size"`
	Nodes  []core.NodeSnapshot `json:"nodes"`
	States []core.StateInfo    `json:"states,omitempty"`
}

// New returns an App that describes its UI with build.
func New(build func(cx *core.Cx), opts ...Option) *App {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	a := &App{
		build:  build,
		tree:   core.NewTree(),
		cfg:    cfg,
		logger: cfg.logger,
		tracer: cfg.tracer,
		base:   context.Background(),
		wake:   make(chan struct{}, 1),
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.tracer == nil {
		a.tracer = otel.Tracer(tracerName)
	}
	a.metrics = newMetrics(cfg.registerer)
	a.frames = NewFrameBuffer(cfg.history)
	return a
}

// Tree returns the retained tree.
func (a *App) Tree() *core.Tree { return a.tree }

// Window returns the connected window, or nil.
func (a *App) Window() platform.Window { return a.window }

// Focus returns the id of the focused node, or 0.
func (a *App) Focus() core.ChildID { return a.focus }

// Frames returns the buffer of recent frame stats.
func (a *App) Frames() *FrameBuffer { return a.frames }

// Stats returns build counters accumulated over the App's lifetime.
func (a *App) Stats() core.BuildStats { return a.totals }

// Closed reports whether the window was asked to close.
func (a *App) Closed() bool { return a.closed }

// Snapshot returns the latest published tree snapshot, or nil. Snapshots
// are only published after [App.EnableSnapshots]. Safe for concurrent use.
func (a *App) Snapshot() *TreeSnapshot { return a.snapshot.Load() }

// EnableSnapshots makes every following dispatch publish a [TreeSnapshot].
func (a *App) EnableSnapshots() { a.publish.Store(true) }

// Connect attaches the App to window and runs the first build, layout and
// paint.
func (a *App) Connect(window platform.Window) {
	a.window = window
	a.size = window.Size()
	a.needsPass = true
	a.needsLayout = true
	a.needsPaint = true
	a.dispatch("connect", nil)
}

// HandleEvent processes one platform event and reports whether a node
// handled it.
func (a *App) HandleEvent(ev event.Event) bool {
	if a.window == nil || a.closed {
		return false
	}
	name := eventName(ev)
	a.metrics.event(name)

	switch e := ev.(type) {
	case event.WindowCloseRequested:
		a.logger.Info("window close requested")
		a.closed = true
		a.window.Close()
		return true
	case event.WindowSize:
		return a.dispatch(name, func(*core.ContextState) bool {
			a.size = e.Size
			a.needsLayout = true
			a.needsPaint = true
			a.invalid.Add(e.Size.ToRect())
			return true
		})
	case event.Timer:
		return a.dispatch(name, func(*core.ContextState) bool {
			a.needsPass = true
			return false
		})
	case event.FocusLost:
		return a.dispatch(name, func(state *core.ContextState) bool {
			a.resolveFocus(state, core.FocusChange{Kind: core.FocusResign})
			return false
		})
	default:
		return a.dispatch(name, func(state *core.ContextState) bool {
			return a.routeEvent(state, ev)
		})
	}
}

// Dispatch schedules fn to run on the UI goroutine before the next frame.
// A build pass always follows the callbacks. Safe for concurrent use.
func (a *App) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	a.dispatchMu.Lock()
	a.dispatchQueue = append(a.dispatchQueue, fn)
	a.dispatchMu.Unlock()
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *App) drainDispatchQueue() []func() {
	a.dispatchMu.Lock()
	callbacks := a.dispatchQueue
	a.dispatchQueue = nil
	a.dispatchMu.Unlock()
	return callbacks
}

// Frame runs queued callbacks and any outstanding build, layout or paint.
// It reports whether there was anything to do.
func (a *App) Frame() bool {
	if a.window == nil || a.closed {
		return false
	}
	callbacks := a.drainDispatchQueue()
	if len(callbacks) == 0 && !a.needsPass && !a.needsLayout && !a.needsPaint {
		return false
	}
	a.dispatch("frame", func(*core.ContextState) bool {
		for _, callback := range callbacks {
			callback()
		}
		a.needsPass = a.needsPass || len(callbacks) > 0
		return false
	})
	return true
}

// Run connects window and processes events until ctx is done, events is
// closed, or the window is asked to close.
func (a *App) Run(ctx context.Context, window platform.Window, events <-chan event.Event) error {
	a.base = ctx
	a.Connect(window)
	for !a.closed {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.HandleEvent(ev)
		case <-a.wake:
			a.Frame()
		}
	}
	return nil
}

// dispatch runs route, then the build loop and the render phases it made
// necessary, and records the result as one frame.
func (a *App) dispatch(trigger string, route func(state *core.ContextState) bool) (handled bool) {
	start := time.Now()
	_, span := a.tracer.Start(a.base, "weft.dispatch",
		trace.WithAttributes(attribute.String("weft.trigger", trigger)))
	defer span.End()
	if core.DebugMode {
		defer errors.Recover("engine.dispatch")
	}

	state := core.NewContextState(a.window, a.focus)
	stats := FrameStats{
		Seq:       a.seq + 1,
		Timestamp: start.UnixMilli(),
		Trigger:   trigger,
		Converged: true,
	}

	if route != nil {
		phase := time.Now()
		handled = route(state)
		stats.Handled = handled
		stats.Phases.EventMs = durationToMillis(time.Since(phase))
	}

	if a.needsPass {
		phase := time.Now()
		stats.Converged = a.converge(state)
		stats.Phases.BuildMs = durationToMillis(time.Since(phase))
		if !stats.Converged {
			span.SetStatus(codes.Error, "build did not converge")
		}
	}

	if a.tree.HasRoot() {
		a.render(state, &stats)
	} else if a.needsLayout || a.needsPaint {
		errors.Report(&errors.WeftError{
			Op:   "engine.render",
			Kind: errors.KindMissingRoot,
			Err:  &errors.MissingRootError{Op: "render"},
		})
		a.needsLayout, a.needsPaint = false, false
	}

	stats.Build = state.Stats()
	stats.FrameMs = durationToMillis(time.Since(start))
	a.finishFrame(stats)

	span.SetAttributes(
		attribute.Int("weft.passes", stats.Build.Passes),
		attribute.Bool("weft.painted", stats.Painted),
	)
	return handled
}

func (a *App) finishFrame(stats FrameStats) {
	a.seq = stats.Seq
	a.totals.Passes += stats.Build.Passes
	a.totals.NodesCreated += stats.Build.NodesCreated
	a.totals.NodesUpdated += stats.Build.NodesUpdated
	a.totals.NodesPruned += stats.Build.NodesPruned
	a.totals.StatesCreated += stats.Build.StatesCreated
	a.totals.StatesPruned += stats.Build.StatesPruned
	a.totals.ActionsConsumed += stats.Build.ActionsConsumed

	a.frames.Add(stats)
	a.metrics.observe(stats, a.tree.Children().Count())

	if a.publish.Load() {
		a.snapshot.Store(&TreeSnapshot{
			Seq:    stats.Seq,
			Focus:  a.focus,
			Size:   a.size,
			Nodes:  a.tree.Snapshot(),
			States: a.tree.TopStates(),
		})
	}

	a.logger.Debug("frame",
		slog.Uint64("seq", stats.Seq),
		slog.String("trigger", stats.Trigger),
		slog.Int("passes", stats.Build.Passes),
		slog.Bool("layout", stats.Layout),
		slog.Bool("painted", stats.Painted),
		slog.Float64("ms", stats.FrameMs),
	)
}

// converge runs build passes until one consumes no action. It reports false
// when the configured pass limit stopped the loop.
func (a *App) converge(state *core.ContextState) bool {
	converged := true
	for passes := 1; a.tree.Build(state, a.build); passes++ {
		if a.cfg.maxPasses > 0 && passes >= a.cfg.maxPasses {
			converged = false
			a.logger.Warn("build did not converge",
				slog.Int("passes", passes),
				slog.Int("limit", a.cfg.maxPasses))
			errors.Report(&errors.WeftError{
				Op:   "engine.converge",
				Kind: errors.KindConvergence,
				Err:  &errors.ConvergenceError{Passes: passes, Limit: a.cfg.maxPasses},
			})
			break
		}
	}
	a.needsPass = false

	built := a.tree.TakeBuildState()
	a.absorb(&built)

	if a.focus != 0 && a.tree.Find(a.focus) == nil {
		// The focused node was pruned.
		a.focus = 0
		state.SetFocus(0)
		a.tree.ClearFocusPath()
	}
	if n := a.tree.Children().Len(); n > 1 {
		a.logger.Warn("extra top-level nodes ignored", slog.Int("count", n))
		errors.Report(&errors.WeftError{
			Op:   "engine.converge",
			Kind: errors.KindExtraRoots,
			Err:  &errors.ExtraRootsError{Count: n},
		})
	}
	return converged
}

// routeEvent delivers a pointer or key event and applies what it requested.
func (a *App) routeEvent(state *core.ContextState, ev event.Event) bool {
	if !a.tree.HasRoot() {
		return false
	}
	window, handled := a.tree.Event(state, a.size, ev)
	a.absorb(window)
	if req, ok := window.TakeFocusRequest(); ok {
		a.resolveFocus(state, req)
	}
	switch ev.(type) {
	case event.PointerDown, event.PointerUp, event.PointerMove, event.Wheel, event.PointerLeave:
		a.applyCursor(window)
	}
	return handled
}

// resolveFocus turns a focus request into a new focus holder and notifies
// the old and new holders when it changed.
func (a *App) resolveFocus(state *core.ContextState, req core.FocusChange) {
	next := a.focus
	switch req.Kind {
	case core.FocusTo:
		next = req.Target
	case core.FocusResign:
		next = 0
	case core.FocusNext:
		next = stepFocus(a.tree.FocusChain(), a.focus, 1)
	case core.FocusPrevious:
		next = stepFocus(a.tree.FocusChain(), a.focus, -1)
	}
	if next == a.focus {
		return
	}
	old := a.focus
	a.focus = next
	state.SetFocus(next)
	if a.tree.HasRoot() {
		a.absorb(a.tree.Lifecycle(state, a.size, core.RouteFocusChanged{Old: old, New: next}))
	}
}

// stepFocus moves dir steps along chain from current, wrapping around. When
// current is not in the chain, forward starts at the first entry and
// backward at the last.
func stepFocus(chain []core.ChildID, current core.ChildID, dir int) core.ChildID {
	if len(chain) == 0 {
		return current
	}
	for i, id := range chain {
		if id == current {
			return chain[(i+dir+len(chain))%len(chain)]
		}
	}
	if dir < 0 {
		return chain[len(chain)-1]
	}
	return chain[0]
}

func (a *App) applyCursor(window *core.ChildState) {
	cursor, _ := window.Cursor()
	if a.hasCursor && cursor == a.cursor {
		return
	}
	a.cursor, a.hasCursor = cursor, true
	a.window.SetCursor(cursor)
}

// absorb folds a window-level state into the App's pending work.
func (a *App) absorb(s *core.ChildState) {
	for _, r := range s.Invalid().Rects() {
		a.invalid.Add(r)
		a.window.InvalidateRect(r)
	}
	a.needsLayout = a.needsLayout || s.NeedsLayout()
	a.needsPaint = a.needsPaint || s.NeedsPaint()
	a.needsPass = a.needsPass || s.NeedsPass()
}

func (a *App) render(state *core.ContextState, stats *FrameStats) {
	if a.needsLayout {
		phase := time.Now()
		a.absorb(a.tree.Layout(state, a.size))
		a.needsLayout = false
		a.needsPaint = true
		stats.Layout = true
		stats.Phases.LayoutMs = durationToMillis(time.Since(phase))
	}
	if !a.needsPaint {
		return
	}
	phase := time.Now()
	damage := a.damage(stats.Layout)
	canvas := a.window.BeginPaint()
	canvas.Clear(a.backgroundColor())
	a.tree.Paint(state, canvas)
	a.window.Present(damage)
	a.needsPaint = false
	a.invalid.Clear()
	stats.Painted = true
	stats.Damage = damage
	stats.Phases.PaintMs = durationToMillis(time.Since(phase))
}

// damage is the invalidated area clipped to the window, or the whole window
// after a relayout or when nothing specific was invalidated.
func (a *App) damage(relayout bool) graphics.Rect {
	full := a.size.ToRect()
	if relayout || a.invalid.IsEmpty() {
		return full
	}
	return a.invalid.Bounds().Intersect(full)
}

func (a *App) backgroundColor() graphics.Color {
	if a.cfg.background != nil {
		return *a.cfg.background
	}
	return theme.Current().ColorScheme.Background
}

func eventName(ev event.Event) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", ev), "event.")
}
