//go:build !linux

package notify

import "fyne.io/fyne/v2"

// NewDesktop returns the preferred desktop channel for this platform.
func NewDesktop(app fyne.App, _ string) Channel {
	return NewFyneNotifier(app)
}
