package board

import (
	"focusboard/internal/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var genderChoices = map[string]session.Gender{
	"Female": session.GenderFemale,
	"Male":   session.GenderMale,
}

type loginView struct {
	content  fyne.CanvasObject
	name     *widget.Entry
	gender   *widget.RadioGroup
	subtitle *widget.Label
	footer   *widget.Label
	errors   *widget.Label
	submit   *widget.Button
}

func newLoginView(onLogin func(name string, gender session.Gender) error) *loginView {
	view := &loginView{
		name:     widget.NewEntry(),
		subtitle: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		footer:   widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		errors:   widget.NewLabel(""),
	}
	view.name.SetPlaceHolder("Enter your name")
	view.errors.Importance = widget.DangerImportance
	view.errors.Hide()

	view.submit = widget.NewButton("", func() {
		if err := onLogin(view.name.Text, view.selected()); err != nil {
			view.errors.SetText(err.Error())
			view.errors.Show()
		}
	})
	view.submit.Importance = widget.HighImportance
	view.name.OnSubmitted = func(string) { view.submit.OnTapped() }

	view.gender = widget.NewRadioGroup([]string{"Female", "Male"}, func(string) {
		view.errors.Hide()
		view.refreshCopy()
	})
	view.gender.Horizontal = true
	view.refreshCopy()

	form := container.NewVBox(
		widget.NewLabelWithStyle("Focus Board", fyne.TextAlignCenter, fyne.TextStyle{}),
		widget.NewLabelWithStyle("Get Focused", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		view.subtitle,
		widget.NewLabel("Your Name"),
		view.name,
		widget.NewLabel("I identify as"),
		view.gender,
		view.errors,
		view.submit,
		view.footer,
	)
	view.content = container.NewCenter(container.NewGridWrap(fyne.NewSize(380, form.MinSize().Height), form))
	return view
}

func (view *loginView) selected() session.Gender {
	return genderChoices[view.gender.Selected]
}

func (view *loginView) refreshCopy() {
	texts := loginTexts(view.selected())
	view.subtitle.SetText(texts.Subtitle)
	view.submit.SetText(texts.Button)
	view.footer.SetText(texts.Footer)
}
