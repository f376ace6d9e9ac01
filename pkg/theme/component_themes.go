package theme

import (
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
)

// TextTheme defines text styles.
type TextTheme struct {
	Body    graphics.TextStyle
	Caption graphics.TextStyle
}

// DefaultTextTheme returns text styles drawn in color.
func DefaultTextTheme(color graphics.Color) TextTheme {
	return TextTheme{
		Body:    graphics.TextStyle{Color: color, FontSize: graphics.DefaultFontSize},
		Caption: graphics.TextStyle{Color: color.WithAlpha(0.7), FontSize: graphics.DefaultFontSize},
	}
}

// ButtonThemeData defines default styling for Button widgets.
type ButtonThemeData struct {
	// BackgroundColor is the resting background.
	BackgroundColor graphics.Color
	// HoveredColor is the background while the pointer is over the button.
	HoveredColor graphics.Color
	// PressedColor is the background while the button holds the pointer.
	PressedColor graphics.Color
	// ForegroundColor is the label color.
	ForegroundColor graphics.Color
	// BorderColor and BorderWidth describe the outline.
	BorderColor graphics.Color
	BorderWidth float64
	// BorderRadius is the corner radius. The label is inset by it on every side.
	BorderRadius float64
	// MinHeight is the smallest height a button lays out at.
	MinHeight float64
	// Padding is extra space around the label.
	Padding layout.EdgeInsets
}

// ButtonStyle is the resolved appearance for one interaction state.
type ButtonStyle struct {
	Background  graphics.Color
	Foreground  graphics.Color
	BorderColor graphics.Color
	BorderWidth float64
	Radius      float64
}

// DefaultButtonTheme returns the button theme derived from colors.
func DefaultButtonTheme(colors ColorScheme) ButtonThemeData {
	return ButtonThemeData{
		BackgroundColor: colors.Primary,
		HoveredColor:    lighten(colors.Primary, 0.1),
		PressedColor:    lighten(colors.Primary, 0.2),
		ForegroundColor: colors.OnPrimary,
		BorderColor:     colors.Outline,
		BorderWidth:     1,
		BorderRadius:    2,
		MinHeight:       24,
		Padding:         layout.EdgeInsetsSymmetric(6, 6),
	}
}

// Style resolves the appearance for the given interaction state.
// Disabled wins over pressed, which wins over hovered.
func (b ButtonThemeData) Style(hot, active, disabled bool) ButtonStyle {
	s := ButtonStyle{
		Background:  b.BackgroundColor,
		Foreground:  b.ForegroundColor,
		BorderColor: b.BorderColor,
		BorderWidth: b.BorderWidth,
		Radius:      b.BorderRadius,
	}
	switch {
	case disabled:
		s.Background = s.Background.WithAlpha(0.5)
		s.Foreground = s.Foreground.WithAlpha(0.5)
	case hot && active:
		s.Background = b.PressedColor
	case hot:
		s.Background = b.HoveredColor
	}
	return s
}

// FocusThemeData defines the focus ring drawn by Focusable.
type FocusThemeData struct {
	RingColor graphics.Color
	RingWidth float64
}

// DefaultFocusTheme returns the focus ring theme derived from colors.
func DefaultFocusTheme(colors ColorScheme) FocusThemeData {
	return FocusThemeData{RingColor: colors.Primary, RingWidth: 2}
}

// TooltipThemeData defines default styling for Tooltip overlays.
type TooltipThemeData struct {
	BackgroundColor graphics.Color
	TextStyle       graphics.TextStyle
	Padding         layout.EdgeInsets
	BorderRadius    float64
	// ZIndex orders the overlay against other deferred paint.
	ZIndex int
}

// DefaultTooltipTheme returns the tooltip theme derived from colors.
func DefaultTooltipTheme(colors ColorScheme) TooltipThemeData {
	return TooltipThemeData{
		BackgroundColor: colors.OnSurface,
		TextStyle:       graphics.TextStyle{Color: colors.Surface, FontSize: graphics.DefaultFontSize},
		Padding:         layout.EdgeInsetsSymmetric(4, 2),
		BorderRadius:    3,
		ZIndex:          100,
	}
}

// lighten moves each channel of c amount of the way toward white.
func lighten(c graphics.Color, amount float64) graphics.Color {
	mix := func(v uint32) uint32 {
		return v + uint32(float64(255-v)*amount)
	}
	r := mix(uint32(c>>16) & 0xFF)
	g := mix(uint32(c>>8) & 0xFF)
	b := mix(uint32(c) & 0xFF)
	return graphics.Color(uint32(c)&0xFF000000 | r<<16 | g<<8 | b)
}
