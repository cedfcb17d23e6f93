package board

import (
	"image/color"

	"focusboard/internal/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// boardTheme pins the light/dark variant and tints the primary color with
// the user's accent.
type boardTheme struct {
	variant fyne.ThemeVariant
	accent  color.Color
}

func newBoardTheme(mode session.Theme, accent color.Color) fyne.Theme {
	variant := theme.VariantLight
	if mode == session.ThemeDark {
		variant = theme.VariantDark
	}
	return &boardTheme{variant: variant, accent: accent}
}

func (t *boardTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return t.accent
	}
	return theme.DefaultTheme().Color(name, t.variant)
}

func (t *boardTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *boardTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *boardTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
