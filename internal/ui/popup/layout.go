package popup

import "fyne.io/fyne/v2"

// columnLayout centers label, clock and status vertically and pins the
// footer to the bottom edge.
type columnLayout struct{}

const (
	labelGap  = 8
	clockGap  = 12
	footerPad = 8
)

func (layout *columnLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	label, clock, status, footer := objects[0], objects[1], objects[2], objects[3]

	labelSize := label.MinSize()
	clockSize := clock.MinSize()
	statusSize := status.MinSize()
	blockHeight := labelSize.Height + labelGap + clockSize.Height + clockGap + statusSize.Height

	y := (size.Height - blockHeight) / 2
	if y < 0 {
		y = 0
	}
	place := func(object fyne.CanvasObject, height float32) {
		object.Move(fyne.NewPos(0, y))
		object.Resize(fyne.NewSize(size.Width, height))
	}

	place(label, labelSize.Height)
	y += labelSize.Height + labelGap
	place(clock, clockSize.Height)
	y += clockSize.Height + clockGap
	place(status, statusSize.Height)

	footerSize := footer.MinSize()
	footerY := size.Height - footerPad - footerSize.Height
	if footerY < y+statusSize.Height {
		footerY = y + statusSize.Height
	}
	footer.Move(fyne.NewPos(0, footerY))
	footer.Resize(fyne.NewSize(size.Width, footerSize.Height))
}

func (layout *columnLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 4 {
		return fyne.NewSize(0, 0)
	}
	var width, height float32
	for _, object := range objects {
		min := object.MinSize()
		if min.Width > width {
			width = min.Width
		}
		height += min.Height
	}
	return fyne.NewSize(width+20, height+labelGap+clockGap+footerPad*2)
}
