package graphics

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFontSize is used when no font size is specified.
const DefaultFontSize = 13

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color    Color
	FontSize float64
}

// TextLine represents a single laid-out line of text.
type TextLine struct {
	Text  string
	Width float64
}

// TextLayout contains measured text metrics and the face used to measure it.
type TextLayout struct {
	Text       string
	Style      TextStyle
	Size       Size
	Ascent     float64
	Descent    float64
	LineHeight float64
	Lines      []TextLine
	Face       font.Face
}

// TextMeasurer shapes text into a [TextLayout].
// A maxWidth of zero or infinity disables wrapping.
type TextMeasurer interface {
	LayoutText(text string, style TextStyle, maxWidth float64) *TextLayout
}

// BasicMeasurer measures text with the fixed 7x13 bitmap face from
// golang.org/x/image, scaled linearly to the requested font size.
// It is deterministic, which makes it suitable for headless use and tests.
type BasicMeasurer struct {
	face font.Face
}

// NewBasicMeasurer returns a measurer backed by basicfont.Face7x13.
func NewBasicMeasurer() *BasicMeasurer {
	return &BasicMeasurer{face: basicfont.Face7x13}
}

// LayoutText implements [TextMeasurer].
func (m *BasicMeasurer) LayoutText(text string, style TextStyle, maxWidth float64) *TextLayout {
	if style.FontSize <= 0 {
		style.FontSize = DefaultFontSize
	}
	scale := style.FontSize / DefaultFontSize
	metrics := m.face.Metrics()
	ascent := float64(metrics.Ascent.Round()) * scale
	descent := float64(metrics.Descent.Round()) * scale
	lineHeight := float64(metrics.Height.Round()) * scale
	measure := func(s string) float64 {
		return float64(font.MeasureString(m.face, s).Round()) * scale
	}
	lines := layoutLines(text, maxWidth, measure)
	if len(lines) == 0 {
		lines = []TextLine{{}}
	}
	width := 0.0
	for _, line := range lines {
		width = math.Max(width, line.Width)
	}
	return &TextLayout{
		Text:       text,
		Style:      style,
		Size:       Size{Width: width, Height: lineHeight * float64(len(lines))},
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: lineHeight,
		Lines:      lines,
		Face:       m.face,
	}
}

func layoutLines(text string, maxWidth float64, measure func(string) float64) []TextLine {
	if maxWidth < 0 || math.IsInf(maxWidth, 0) {
		maxWidth = 0
	}
	paragraphs := strings.Split(text, "\n")
	lines := make([]TextLine, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		if paragraph == "" {
			lines = append(lines, TextLine{})
			continue
		}
		if maxWidth == 0 {
			lines = append(lines, TextLine{Text: paragraph, Width: measure(paragraph)})
			continue
		}
		for _, line := range wrapParagraph(paragraph, maxWidth, measure) {
			lines = append(lines, TextLine{Text: line, Width: measure(line)})
		}
	}
	return lines
}

// wrapParagraph breaks at the last whitespace that fits, or mid-word when a
// single word is wider than maxWidth.
func wrapParagraph(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	start := 0
	for start < len(text) {
		lastBreak := -1
		lastFit := -1
		for i := start; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			next := i + size
			if measure(text[start:next]) > maxWidth {
				break
			}
			lastFit = next
			if unicode.IsSpace(r) {
				lastBreak = next
			}
			i = next
		}
		if lastFit == -1 {
			_, size := utf8.DecodeRuneInString(text[start:])
			lastFit = start + size
		}
		cut := lastFit
		if lastFit < len(text) && lastBreak > start && lastBreak < lastFit {
			cut = lastBreak
		}
		lines = append(lines, strings.TrimRightFunc(text[start:cut], unicode.IsSpace))
		start = cut
		for start < len(text) {
			r, size := utf8.DecodeRuneInString(text[start:])
			if !unicode.IsSpace(r) {
				break
			}
			start += size
		}
	}
	return lines
}
