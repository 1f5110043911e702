package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Prompt is the ":" command input bar.
type Prompt struct {
	*tview.InputField
	theme    *Theme
	onSubmit func(text string)
	onCancel func()
}

// NewPrompt creates a new command prompt.
func NewPrompt(theme *Theme) *Prompt {
	p := &Prompt{
		InputField: tview.NewInputField().SetLabel(":"),
	}
	p.SetBorder(true)
	p.SetTitle(" Command ")
	p.ApplyTheme(theme)

	p.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			text := p.GetText()
			p.SetText("")
			if p.onSubmit != nil && text != "" {
				p.onSubmit(text)
			} else if p.onCancel != nil {
				p.onCancel()
			}
		case tcell.KeyEscape:
			p.SetText("")
			if p.onCancel != nil {
				p.onCancel()
			}
		}
	})
	return p
}

// ApplyTheme recolors the prompt.
func (p *Prompt) ApplyTheme(theme *Theme) {
	p.theme = theme
	p.SetBorderColor(theme.PromptBorderColor)
	p.SetBackgroundColor(theme.BgColor)
	p.SetFieldBackgroundColor(theme.BgColor)
	p.SetFieldTextColor(theme.FgColor)
	p.SetLabelColor(theme.MenuKeyColor)
	p.SetTitleColor(theme.TitleColor)
}

// SetOnSubmit sets the callback run with the entered command.
func (p *Prompt) SetOnSubmit(fn func(text string)) {
	p.onSubmit = fn
}

// SetOnCancel sets the callback run when the prompt is dismissed.
func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}
