// Package config loads the optional weft.yaml file and WEFT_* environment
// overrides used by the weft CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	werrors "github.com/go-drift/weft/pkg/errors"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/theme"
)

// FileName is the name of the project configuration file.
const FileName = "weft.yaml"

const (
	defaultWidth  = 640
	defaultHeight = 480
	defaultDemo   = "counter"
	defaultAddr   = "127.0.0.1:9464"
)

// Config represents weft.yaml. Environment variables take precedence over
// values read from the file.
type Config struct {
	Version     string            `yaml:"version,omitempty" env:"WEFT_CONFIG_VERSION"`
	App         AppConfig         `yaml:"app"`
	Engine      EngineConfig      `yaml:"engine"`
	Log         LogConfig         `yaml:"log"`
	DebugServer DebugServerConfig `yaml:"debug_server"`
	Theme       string            `yaml:"theme,omitempty" env:"WEFT_THEME"`
}

// AppConfig contains the window and the description to run.
type AppConfig struct {
	Title  string `yaml:"title,omitempty" env:"WEFT_APP_TITLE"`
	Width  int    `yaml:"width,omitempty" env:"WEFT_APP_WIDTH"`
	Height int    `yaml:"height,omitempty" env:"WEFT_APP_HEIGHT"`
	Demo   string `yaml:"demo,omitempty" env:"WEFT_APP_DEMO"`
}

// EngineConfig contains reconciliation settings.
type EngineConfig struct {
	// MaxPasses bounds build passes per frame. Zero is unbounded.
	MaxPasses    int  `yaml:"max_passes,omitempty" env:"WEFT_ENGINE_MAX_PASSES"`
	Debug        bool `yaml:"debug,omitempty" env:"WEFT_ENGINE_DEBUG"`
	FrameHistory int  `yaml:"frame_history,omitempty" env:"WEFT_ENGINE_FRAME_HISTORY"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" env:"WEFT_LOG_LEVEL"`
	Format string `yaml:"format,omitempty" env:"WEFT_LOG_FORMAT"`
}

// DebugServerConfig contains the introspection server settings.
type DebugServerConfig struct {
	Addr    string `yaml:"addr,omitempty" env:"WEFT_DEBUG_ADDR"`
	Metrics bool   `yaml:"metrics,omitempty" env:"WEFT_DEBUG_METRICS"`
}

// Resolved contains configuration with defaults applied and values checked.
type Resolved struct {
	Root         string
	ModulePath   string
	Title        string
	Size         graphics.Size
	Demo         string
	MaxPasses    int
	Debug        bool
	FrameHistory int
	LogLevel     slog.Level
	LogFormat    string
	DebugAddr    string
	Metrics      bool
	Brightness   theme.Brightness
}

// LoadOptional reads weft.yaml from dir if present. A missing file yields an
// empty config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// ParseEnv applies WEFT_* environment variables to target. Unset variables
// leave the existing values alone.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Resolve loads weft.yaml from dir, applies environment overrides and fills
// in defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, configError(err)
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, configError(err)
	}
	r, err := resolve(dir, cfg)
	if err != nil {
		return nil, configError(err)
	}
	return r, nil
}

func configError(err error) error {
	return &werrors.WeftError{Op: "config.Resolve", Kind: werrors.KindConfig, Err: err}
}

func resolve(dir string, cfg *Config) (*Resolved, error) {
	if err := validateVersion(cfg.Version); err != nil {
		return nil, err
	}

	// go.mod is optional; without it the title falls back to the directory.
	modPath, _ := modulePath(dir)

	title := strings.TrimSpace(cfg.App.Title)
	if title == "" {
		title = defaultTitle(modPath, dir)
	}

	width, height := cfg.App.Width, cfg.App.Height
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("app size must be positive (got %dx%d)", width, height)
	}

	demo := strings.TrimSpace(cfg.App.Demo)
	if demo == "" {
		demo = defaultDemo
	}

	if cfg.Engine.MaxPasses < 0 {
		return nil, fmt.Errorf("engine.max_passes cannot be negative (got %d)", cfg.Engine.MaxPasses)
	}
	if cfg.Engine.FrameHistory < 0 {
		return nil, fmt.Errorf("engine.frame_history cannot be negative (got %d)", cfg.Engine.FrameHistory)
	}

	level := slog.LevelInfo
	if s := strings.TrimSpace(cfg.Log.Level); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	switch format {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("log.format must be text or json (got %q)", cfg.Log.Format)
	}

	brightness := theme.BrightnessLight
	if s := strings.TrimSpace(cfg.Theme); s != "" {
		b, err := theme.ParseBrightness(s)
		if err != nil {
			return nil, err
		}
		brightness = b
	}

	addr := strings.TrimSpace(cfg.DebugServer.Addr)
	if addr == "" {
		addr = defaultAddr
	}

	return &Resolved{
		Root:         dir,
		ModulePath:   modPath,
		Title:        title,
		Size:         graphics.Size{Width: float64(width), Height: float64(height)},
		Demo:         demo,
		MaxPasses:    cfg.Engine.MaxPasses,
		Debug:        cfg.Engine.Debug,
		FrameHistory: cfg.Engine.FrameHistory,
		LogLevel:     level,
		LogFormat:    format,
		DebugAddr:    addr,
		Metrics:      cfg.DebugServer.Metrics,
		Brightness:   brightness,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod or
// weft.yaml. It returns the current directory when neither exists.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func validateVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("version %q is not a semantic version", v)
	}
	if semver.Major(v) != "v1" {
		return fmt.Errorf("unsupported config version %s (want v1)", v)
	}
	return nil
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultTitle(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "weft"
	}
	return base
}
