package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/quickblessing/internal/prefs"
	"github.com/matheus3301/quickblessing/internal/tui/ui"
	"github.com/rivo/tview"
)

// Header shows the title on the left and the theme and language toggles on
// the right.
type Header struct {
	*tview.Flex
	logo    *ui.Logo
	toggles *tview.TextView
	theme   *ui.Theme
	lang    prefs.Language
}

// NewHeader creates the header bar.
func NewHeader(theme *ui.Theme, lang prefs.Language) *Header {
	h := &Header{
		Flex:    tview.NewFlex(),
		logo:    ui.NewLogo(theme, TextFor(lang).Title),
		toggles: tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignRight),
		theme:   theme,
		lang:    lang,
	}
	h.toggles.SetBorderPadding(0, 0, 0, 1)
	h.AddItem(h.logo, 0, 1, false).
		AddItem(h.toggles, 16, 0, false)
	h.ApplyTheme(theme)
	return h
}

// Name implements ui.Component.
func (h *Header) Name() string { return "Header" }

// Hints implements ui.Component.
func (h *Header) Hints() []ui.MenuHint { return nil }

// ApplyTheme implements ui.Component.
func (h *Header) ApplyTheme(theme *ui.Theme) {
	h.theme = theme
	h.SetBackgroundColor(theme.BgColor)
	h.toggles.SetBackgroundColor(theme.BgColor)
	h.logo.ApplyTheme(theme)
	h.render()
}

// SetLanguage switches the title and the language tag.
func (h *Header) SetLanguage(lang prefs.Language) {
	h.lang = lang
	h.logo.SetTitle(TextFor(lang).Title)
	h.render()
}

func (h *Header) render() {
	h.toggles.Clear()
	kc := ui.Tag(h.theme.MenuKeyColor)
	fg := ui.Tag(h.theme.FgColor)
	_, _ = fmt.Fprintf(h.toggles, "[%s]%s[-] [%s::b]%s[-:-:-]",
		kc, sanitizeForTerminal(h.theme.Icon()),
		fg, strings.ToUpper(string(h.lang)))
}
