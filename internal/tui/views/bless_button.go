package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/quickblessing/internal/prefs"
	"github.com/matheus3301/quickblessing/internal/tui/ui"
	"github.com/rivo/tview"
)

// BlessButton is the primary action. It is disabled while a cooldown runs.
type BlessButton struct {
	*tview.Button
	theme   *ui.Theme
	waiting bool
}

// NewBlessButton creates the button labelled for lang.
func NewBlessButton(theme *ui.Theme, lang prefs.Language) *BlessButton {
	b := &BlessButton{Button: tview.NewButton(TextFor(lang).BlessMe)}
	b.ApplyTheme(theme)
	return b
}

// Name implements ui.Component.
func (b *BlessButton) Name() string { return "BlessButton" }

// Hints implements ui.Component.
func (b *BlessButton) Hints() []ui.MenuHint { return nil }

// ApplyTheme implements ui.Component.
func (b *BlessButton) ApplyTheme(theme *ui.Theme) {
	b.theme = theme
	b.SetBackgroundColor(theme.BgColor)
	b.SetStyle(tcell.StyleDefault.Background(theme.ButtonBg).Foreground(theme.ButtonFg).Bold(true))
	b.SetActivatedStyle(tcell.StyleDefault.Background(theme.BorderFocusColor).Foreground(theme.ButtonFg).Bold(true))
	b.SetDisabledStyle(tcell.StyleDefault.Background(theme.ButtonDisabledBg).Foreground(theme.ButtonDisabledFg))
}

// SetLanguage relabels the button.
func (b *BlessButton) SetLanguage(lang prefs.Language) {
	b.SetLabel(TextFor(lang).BlessMe)
}

// SetWaiting toggles the disabled style.
func (b *BlessButton) SetWaiting(waiting bool) {
	b.waiting = waiting
	b.SetDisabled(waiting)
}

// Waiting reports whether the button is disabled.
func (b *BlessButton) Waiting() bool {
	return b.waiting
}
