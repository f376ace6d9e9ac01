// Package theme holds the colors and metrics the built-in widgets paint with.
package theme

import (
	"fmt"
	"sync/atomic"

	"github.com/go-drift/weft/pkg/graphics"
)

// Brightness selects a light or dark palette.
type Brightness int

const (
	BrightnessLight Brightness = iota
	BrightnessDark
)

func (b Brightness) String() string {
	switch b {
	case BrightnessLight:
		return "light"
	case BrightnessDark:
		return "dark"
	default:
		return fmt.Sprintf("Brightness(%d)", int(b))
	}
}

// ParseBrightness converts "light" or "dark" to a [Brightness].
func ParseBrightness(s string) (Brightness, error) {
	switch s {
	case "", "light":
		return BrightnessLight, nil
	case "dark":
		return BrightnessDark, nil
	}
	return BrightnessLight, fmt.Errorf("unknown brightness %q", s)
}

// ColorScheme is the base palette component themes derive from.
type ColorScheme struct {
	Primary      graphics.Color
	OnPrimary    graphics.Color
	Surface      graphics.Color
	OnSurface    graphics.Color
	Background   graphics.Color
	OnBackground graphics.Color
	Outline      graphics.Color
}

// LightColorScheme returns the default light palette.
func LightColorScheme() ColorScheme {
	return ColorScheme{
		Primary:      graphics.RGB(128, 128, 222),
		OnPrimary:    graphics.ColorBlack,
		Surface:      graphics.RGB(240, 240, 240),
		OnSurface:    graphics.RGB(32, 32, 32),
		Background:   graphics.ColorWhite,
		OnBackground: graphics.ColorBlack,
		Outline:      graphics.RGB(179, 179, 179),
	}
}

// DarkColorScheme returns the default dark palette.
func DarkColorScheme() ColorScheme {
	return ColorScheme{
		Primary:      graphics.RGB(96, 96, 200),
		OnPrimary:    graphics.ColorWhite,
		Surface:      graphics.RGB(48, 48, 48),
		OnSurface:    graphics.RGB(230, 230, 230),
		Background:   graphics.RGB(24, 24, 24),
		OnBackground: graphics.ColorWhite,
		Outline:      graphics.RGB(90, 90, 90),
	}
}

// ThemeData is the full theme. Component themes left nil are derived from
// the color scheme.
type ThemeData struct {
	ColorScheme ColorScheme
	TextTheme   TextTheme
	Brightness  Brightness

	ButtonTheme  *ButtonThemeData
	FocusTheme   *FocusThemeData
	TooltipTheme *TooltipThemeData
}

// DefaultLightTheme returns the default light theme.
func DefaultLightTheme() *ThemeData {
	colors := LightColorScheme()
	return &ThemeData{
		ColorScheme: colors,
		TextTheme:   DefaultTextTheme(colors.OnBackground),
		Brightness:  BrightnessLight,
	}
}

// DefaultDarkTheme returns the default dark theme.
func DefaultDarkTheme() *ThemeData {
	colors := DarkColorScheme()
	return &ThemeData{
		ColorScheme: colors,
		TextTheme:   DefaultTextTheme(colors.OnBackground),
		Brightness:  BrightnessDark,
	}
}

// ForBrightness returns the default theme for b.
func ForBrightness(b Brightness) *ThemeData {
	if b == BrightnessDark {
		return DefaultDarkTheme()
	}
	return DefaultLightTheme()
}

// ButtonThemeOf returns the button theme, deriving from ColorScheme if not set.
func (t *ThemeData) ButtonThemeOf() ButtonThemeData {
	if t.ButtonTheme != nil {
		return *t.ButtonTheme
	}
	return DefaultButtonTheme(t.ColorScheme)
}

// FocusThemeOf returns the focus ring theme, deriving from ColorScheme if not set.
func (t *ThemeData) FocusThemeOf() FocusThemeData {
	if t.FocusTheme != nil {
		return *t.FocusTheme
	}
	return DefaultFocusTheme(t.ColorScheme)
}

// TooltipThemeOf returns the tooltip theme, deriving from ColorScheme if not set.
func (t *ThemeData) TooltipThemeOf() TooltipThemeData {
	if t.TooltipTheme != nil {
		return *t.TooltipTheme
	}
	return DefaultTooltipTheme(t.ColorScheme)
}

var current atomic.Pointer[ThemeData]

// Current returns the theme widgets paint with.
func Current() *ThemeData {
	if t := current.Load(); t != nil {
		return t
	}
	return DefaultLightTheme()
}

// SetCurrent replaces the theme. A nil theme restores the default. Widgets
// pick the change up on their next layout or paint.
func SetCurrent(t *ThemeData) {
	current.Store(t)
}
