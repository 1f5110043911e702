package views

import (
	"fmt"

	"github.com/matheus3301/quickblessing/internal/tui/ui"
	"github.com/rivo/tview"
)

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetTitle(" Help ")

	hv := &HelpView{TextView: tv}
	hv.ApplyTheme(theme)
	return hv
}

// Name implements ui.Component.
func (hv *HelpView) Name() string { return "Help" }

// Hints implements ui.Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

// ApplyTheme implements ui.Component.
func (hv *HelpView) ApplyTheme(theme *ui.Theme) {
	hv.theme = theme
	hv.SetBorderColor(theme.BorderColor)
	hv.SetBackgroundColor(theme.BgColor)
	hv.SetTextColor(theme.FgColor)
	hv.SetTitleColor(theme.TitleColor)
	hv.render()
}

func (hv *HelpView) render() {
	hv.Clear()
	kc := ui.Tag(hv.theme.MenuKeyColor)

	help := fmt.Sprintf(`
  [::b]Keys[-:-:-]

  [%s]Enter[-:-:-] / [%s]b[-:-:-]  Be blessed (starts a 10 minute cooldown)
  [%s]t[-:-:-]          Toggle light / dark theme
  [%s]l[-:-:-]          Toggle language (TR / EN)
  [%s]:[-:-:-]          Command mode
  [%s]?[-:-:-]          Help
  [%s]Esc[-:-:-]        Back
  [%s]q[-:-:-]          Quit

  [::b]Commands (: mode)[-:-:-]

  [%s]:bless[-:-:-]               Be blessed
  [%s]:theme[-:-:-] [light|dark]  Set or toggle the theme
  [%s]:lang[-:-:-] [tr|en]        Set or toggle the language
  [%s]:help[-:-:-] / [%s]:h[-:-:-]          Show this help
  [%s]:quit[-:-:-] / [%s]:q[-:-:-]          Quit application
`,
		kc, kc, kc, kc, kc, kc, kc, kc,
		kc, kc, kc, kc, kc, kc, kc,
	)

	_, _ = fmt.Fprint(hv, help)
}
