package theme

import (
	"fmt"
	"image/color"
)

// DefaultTheme colours with 24 bit ANSI escapes.
type DefaultTheme struct{}

func (t *DefaultTheme) Label(s string) string {
	return paint(labelColor, s)
}

func (t *DefaultTheme) Value(s string) string {
	return "\033[1m" + s + "\033[0m"
}

func (t *DefaultTheme) PP(s string) string {
	return paint(ppColor, s)
}

// Stars colours s by the difficulty band stars falls in.
func (t *DefaultTheme) Stars(stars float64, s string) string {
	return paint(StarColor(stars), s)
}

func (t *DefaultTheme) Warn(s string) string {
	return paint(warnColor, s)
}

// PlainTheme leaves everything as is, for pipes and files.
type PlainTheme struct{}

func (t *PlainTheme) Label(s string) string {
	return s
}

func (t *PlainTheme) Value(s string) string {
	return s
}

func (t *PlainTheme) PP(s string) string {
	return s
}

func (t *PlainTheme) Stars(stars float64, s string) string {
	return s
}

func (t *PlainTheme) Warn(s string) string {
	return s
}

var (
	labelColor = color.RGBA{106, 106, 106, 255}
	ppColor    = color.RGBA{236, 195, 0, 255}
	warnColor  = color.RGBA{236, 30, 0, 255}

	starBands = []struct {
		Below float64
		Color color.RGBA
	}{
		{2, color.RGBA{0, 118, 236, 255}},   // easy blue
		{2.7, color.RGBA{0, 236, 128, 255}}, // normal green
		{4, color.RGBA{236, 195, 0, 255}},   // hard yellow
		{5.3, color.RGBA{236, 0, 106, 255}}, // insane pink
		{6.5, color.RGBA{106, 0, 236, 255}}, // expert purple
	}
	expertPlus = color.RGBA{255, 255, 255, 255}
)

func StarColor(stars float64) color.RGBA {
	for _, b := range starBands {
		if stars < b.Below {
			return b.Color
		}
	}
	return expertPlus
}

func paint(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}
