package mirror

import (
	"testing"

	"focusboard/internal/core/model"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := map[int]string{
		2700: "45:00",
		1500: "25:00",
		61:   "01:01",
		9:    "00:09",
		0:    "00:00",
		-4:   "00:00",
		6000: "100:00",
	}
	for seconds, want := range tests {
		assert.Equal(t, want, FormatClock(seconds), seconds)
	}
}

func TestPresent(t *testing.T) {
	view := Present(Projection{IsOpen: true, TimeLeft: 299, IsRunning: true, Mode: model.ModeBreak})
	assert.Equal(t, "Break Time", view.Label)
	assert.Equal(t, "04:59", view.Clock)
	assert.Equal(t, "⏱️ Running", view.Status)
	assert.Equal(t, "#00d4ff", Hex(view.Color))
	assert.Equal(t, "#10b981", Hex(view.StatusColor))
	assert.Equal(t, Footer, view.Footer)

	paused := Present(DefaultProjection())
	assert.Equal(t, "Focus Time", paused.Label)
	assert.Equal(t, "45:00", paused.Clock)
	assert.Equal(t, "⏸️ Paused", paused.Status)
	assert.Equal(t, "#a855f7", Hex(paused.Color))
	assert.Equal(t, "#999999", Hex(paused.StatusColor))

	assert.Equal(t, "#06b6d4", Hex(Present(Projection{Mode: model.ModeWater}).Color))
}
