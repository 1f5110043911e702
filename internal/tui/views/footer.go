package views

import (
	"github.com/matheus3301/quickblessing/internal/prefs"
	"github.com/matheus3301/quickblessing/internal/tui/ui"
	"github.com/rivo/tview"
)

// Footer holds the disclaimer, the flash bar and the key hints.
type Footer struct {
	*tview.Flex
	disclaimer *tview.TextView
	Flash      *ui.FlashBar
	Menu       *ui.Menu
}

// NewFooter creates the footer.
func NewFooter(theme *ui.Theme, lang prefs.Language) *Footer {
	f := &Footer{
		Flex: tview.NewFlex().SetDirection(tview.FlexRow),
		disclaimer: tview.NewTextView().
			SetTextAlign(tview.AlignCenter),
		Flash: ui.NewFlashBar(theme),
		Menu:  ui.NewMenu(theme),
	}
	f.AddItem(f.disclaimer, 1, 0, false).
		AddItem(f.Flash, 1, 0, false).
		AddItem(f.Menu, 1, 0, false)
	f.SetLanguage(lang)
	f.ApplyTheme(theme)
	return f
}

// Name implements ui.Component.
func (f *Footer) Name() string { return "Footer" }

// Hints implements ui.Component.
func (f *Footer) Hints() []ui.MenuHint { return nil }

// ApplyTheme implements ui.Component.
func (f *Footer) ApplyTheme(theme *ui.Theme) {
	f.SetBackgroundColor(theme.BgColor)
	f.disclaimer.SetBackgroundColor(theme.BgColor)
	f.disclaimer.SetTextColor(theme.FgColor)
	f.Flash.ApplyTheme(theme)
	f.Menu.ApplyTheme(theme)
}

// SetLanguage swaps the disclaimer text.
func (f *Footer) SetLanguage(lang prefs.Language) {
	f.disclaimer.SetText(TextFor(lang).Disclaimer)
}
