package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	werrors "github.com/go-drift/weft/pkg/errors"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/theme"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadOptionalMissing(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOptionalInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "app: [")
	if _, err := LoadOptional(dir); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Fatalf("LoadOptional error = %v, want parse failure", err)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/tools/panel/v2\n\ngo 1.24\n")

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := &Resolved{
		Root:       dir,
		ModulePath: "example.com/tools/panel/v2",
		Title:      "panel",
		Size:       graphics.Size{Width: 640, Height: 480},
		Demo:       "counter",
		LogLevel:   slog.LevelInfo,
		DebugAddr:  defaultAddr,
		Brightness: theme.BrightnessLight,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveWithoutModule(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sandbox")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Title != "sandbox" || got.ModulePath != "" {
		t.Errorf("title = %q, module = %q; want sandbox and no module", got.Title, got.ModulePath)
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
version: "1.2.0"
app:
  title: Inspector
  width: 320
  height: 200
  demo: todo
engine:
  max_passes: 8
  frame_history: 64
log:
  level: debug
  format: JSON
debug_server:
  addr: ":0"
  metrics: true
theme: dark
`)

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := &Resolved{
		Root:         dir,
		Title:        "Inspector",
		Size:         graphics.Size{Width: 320, Height: 200},
		Demo:         "todo",
		MaxPasses:    8,
		FrameHistory: 64,
		LogLevel:     slog.LevelDebug,
		LogFormat:    "json",
		DebugAddr:    ":0",
		Metrics:      true,
		Brightness:   theme.BrightnessDark,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "app:\n  title: FromFile\n  width: 100\n")
	t.Setenv("WEFT_APP_TITLE", "FromEnv")
	t.Setenv("WEFT_ENGINE_DEBUG", "true")
	t.Setenv("WEFT_LOG_LEVEL", "warn")

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Title != "FromEnv" {
		t.Errorf("Title = %q, want FromEnv", got.Title)
	}
	if got.Size.Width != 100 {
		t.Errorf("Width = %v, want the file value 100", got.Size.Width)
	}
	if !got.Debug {
		t.Error("Debug = false, want true")
	}
	if got.LogLevel != slog.LevelWarn {
		t.Errorf("LogLevel = %v, want WARN", got.LogLevel)
	}
}

func TestResolveEnvParseError(t *testing.T) {
	t.Setenv("WEFT_APP_WIDTH", "wide")
	if _, err := Resolve(t.TempDir()); err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Fatalf("Resolve error = %v, want parse env failure", err)
	}
}

func TestResolveTheme(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "theme: dark\n")
	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Brightness != theme.BrightnessDark {
		t.Errorf("Brightness = %v, want dark", got.Brightness)
	}
}

func TestResolveErrorKind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "theme: sepia\n")
	_, err := Resolve(dir)
	var werr *werrors.WeftError
	if !stderrors.As(err, &werr) {
		t.Fatalf("Resolve error = %v (%T), want a *WeftError", err, err)
	}
	if werr.Kind != werrors.KindConfig || werr.Op != "config.Resolve" {
		t.Errorf("error = %s %s, want config.Resolve config", werr.Op, werr.Kind)
	}
}

func TestResolveRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"bad version", Config{Version: "one"}, "not a semantic version"},
		{"future version", Config{Version: "v2.0.0"}, "want v1"},
		{"negative size", Config{App: AppConfig{Width: -1}}, "must be positive"},
		{"negative passes", Config{Engine: EngineConfig{MaxPasses: -3}}, "max_passes"},
		{"negative history", Config{Engine: EngineConfig{FrameHistory: -1}}, "frame_history"},
		{"log level", Config{Log: LogConfig{Level: "loud"}}, "log.level"},
		{"log format", Config{Log: LogConfig{Format: "xml"}}, "log.format"},
		{"theme", Config{Theme: "sepia"}, "unknown brightness"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			_, err := resolve(t.TempDir(), &cfg)
			if err == nil {
				t.Fatal("resolve succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestDefaultTitle(t *testing.T) {
	tests := []struct {
		module, dir, want string
	}{
		{"github.com/acme/board", "/src/x", "board"},
		{"github.com/acme/board/v3", "/src/x", "board"},
		{"", "/src/widgets", "widgets"},
		{"", "/", "weft"},
	}
	for _, tt := range tests {
		if got := defaultTitle(tt.module, tt.dir); got != tt.want {
			t.Errorf("defaultTitle(%q, %q) = %q, want %q", tt.module, tt.dir, got, tt.want)
		}
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(nested)

	got, err := FindProjectRoot()
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	want, _ := filepath.EvalSymlinks(root)
	if resolved, _ := filepath.EvalSymlinks(got); resolved != want {
		t.Errorf("FindProjectRoot = %q, want %q", got, root)
	}
}
