package mirror

import (
	"fmt"
	"image/color"

	"focusboard/internal/core/model"
)

// Footer is the hint shown on every floating surface.
const Footer = "Return to main window to control"

var (
	runningColor = color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	pausedColor  = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
)

// View is everything a surface draws for one projection.
type View struct {
	Label       string
	Clock       string
	Status      string
	Color       color.NRGBA
	StatusColor color.NRGBA
	Footer      string
}

// Present derives the view of state.
func Present(state Projection) View {
	view := View{
		Label:       state.Mode.Label(),
		Clock:       FormatClock(state.TimeLeft),
		Status:      "⏸️ Paused",
		Color:       ModeColor(state.Mode),
		StatusColor: pausedColor,
		Footer:      Footer,
	}
	if state.IsRunning {
		view.Status = "⏱️ Running"
		view.StatusColor = runningColor
	}
	return view
}

// FormatClock renders seconds as zero-padded MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ModeColor is the accent of a mode.
func ModeColor(mode model.Mode) color.NRGBA {
	switch mode {
	case model.ModeBreak:
		return color.NRGBA{R: 0x00, G: 0xd4, B: 0xff, A: 0xff}
	case model.ModeWater:
		return color.NRGBA{R: 0x06, G: 0xb6, B: 0xd4, A: 0xff}
	default:
		return color.NRGBA{R: 0xa8, G: 0x55, B: 0xf7, A: 0xff}
	}
}

// Hex formats c as #rrggbb.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
