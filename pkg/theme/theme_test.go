package theme

import (
	"testing"

	"github.com/go-drift/weft/pkg/graphics"
)

func TestParseBrightness(t *testing.T) {
	tests := []struct {
		in      string
		want    Brightness
		wantErr bool
	}{
		{"", BrightnessLight, false},
		{"light", BrightnessLight, false},
		{"dark", BrightnessDark, false},
		{"Dark", BrightnessLight, true},
	}
	for _, tt := range tests {
		got, err := ParseBrightness(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBrightness(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseBrightness(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestForBrightness(t *testing.T) {
	if got := ForBrightness(BrightnessDark); got.Brightness != BrightnessDark {
		t.Errorf("ForBrightness(dark).Brightness = %v", got.Brightness)
	}
	if got := ForBrightness(BrightnessLight); got.ColorScheme != LightColorScheme() {
		t.Error("ForBrightness(light) did not use the light scheme")
	}
}

func TestComponentThemesDerive(t *testing.T) {
	th := DefaultDarkTheme()
	if got, want := th.ButtonThemeOf(), DefaultButtonTheme(th.ColorScheme); got != want {
		t.Errorf("ButtonThemeOf = %+v, want %+v", got, want)
	}

	custom := FocusThemeData{RingColor: graphics.RGB(1, 2, 3), RingWidth: 5}
	th.FocusTheme = &custom
	if got := th.FocusThemeOf(); got != custom {
		t.Errorf("FocusThemeOf = %+v, want the override", got)
	}
	if got := th.TooltipThemeOf().ZIndex; got != 100 {
		t.Errorf("tooltip ZIndex = %d, want 100", got)
	}
}

func TestButtonStyle(t *testing.T) {
	b := DefaultButtonTheme(LightColorScheme())
	tests := []struct {
		name                  string
		hot, active, disabled bool
		want                  graphics.Color
	}{
		{"rest", false, false, false, b.BackgroundColor},
		{"hot", true, false, false, b.HoveredColor},
		{"pressed", true, true, false, b.PressedColor},
		{"active off the button", false, true, false, b.BackgroundColor},
		{"disabled wins", true, true, true, b.BackgroundColor.WithAlpha(0.5)},
	}
	for _, tt := range tests {
		if got := b.Style(tt.hot, tt.active, tt.disabled).Background; got != tt.want {
			t.Errorf("%s: background = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLighten(t *testing.T) {
	if got, want := lighten(graphics.RGB(0, 0, 0), 0.5), graphics.RGB(127, 127, 127); got != want {
		t.Errorf("lighten(black, 0.5) = %v, want %v", got, want)
	}
	if got := lighten(graphics.RGB(255, 255, 255), 0.3); got != graphics.RGB(255, 255, 255) {
		t.Errorf("lighten(white) = %v, want white", got)
	}
}

func TestCurrent(t *testing.T) {
	t.Cleanup(func() { SetCurrent(nil) })

	if Current().Brightness != BrightnessLight {
		t.Fatal("default theme is not light")
	}
	SetCurrent(DefaultDarkTheme())
	if Current().Brightness != BrightnessDark {
		t.Error("SetCurrent(dark) not observed")
	}
	SetCurrent(nil)
	if Current().Brightness != BrightnessLight {
		t.Error("SetCurrent(nil) did not restore the default")
	}
}
