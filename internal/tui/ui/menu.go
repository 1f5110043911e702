package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Menu displays keyboard shortcut hints on a single line.
type Menu struct {
	*tview.TextView
	theme *Theme
	hints []MenuHint
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	m := &Menu{
		TextView: tview.NewTextView().
			SetDynamicColors(true).
			SetTextAlign(tview.AlignCenter),
	}
	m.ApplyTheme(theme)
	return m
}

// ApplyTheme recolors the menu and re-renders the current hints.
func (m *Menu) ApplyTheme(theme *Theme) {
	m.theme = theme
	m.SetBackgroundColor(theme.BgColor)
	m.SetTextColor(theme.FgColor)
	m.Update(m.hints)
}

// Update renders hints as "<key> description" pairs.
func (m *Menu) Update(hints []MenuHint) {
	m.hints = hints
	m.Clear()

	keyColor := colorName(m.theme.MenuKeyColor)
	numColor := colorName(m.theme.NumericKeyColor)

	for i, h := range hints {
		kc := keyColor
		if h.Numeric {
			kc = numColor
		}
		if i > 0 {
			_, _ = fmt.Fprint(m, "  ")
		}
		_, _ = fmt.Fprintf(m, "[%s::b]<%s>[-:-:-] %s", kc, tview.Escape(h.Key), h.Description)
	}
}
