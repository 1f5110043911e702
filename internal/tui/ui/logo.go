package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Logo displays the title banner.
type Logo struct {
	*tview.TextView
	theme *Theme
	title string
}

// NewLogo creates a new logo component.
func NewLogo(theme *Theme, title string) *Logo {
	l := &Logo{
		TextView: tview.NewTextView().
			SetDynamicColors(true).
			SetTextAlign(tview.AlignLeft),
		title: title,
	}
	l.SetBorderPadding(0, 0, 1, 0)
	l.ApplyTheme(theme)
	return l
}

// ApplyTheme recolors the banner.
func (l *Logo) ApplyTheme(theme *Theme) {
	l.theme = theme
	l.SetBackgroundColor(theme.BgColor)
	l.render()
}

// SetTitle replaces the banner text.
func (l *Logo) SetTitle(title string) {
	l.title = title
	l.render()
}

func (l *Logo) render() {
	l.Clear()
	glow := l.theme.GlowColors
	// Each letter takes the next glow color, like a gradient.
	i := 0
	for _, r := range l.title {
		_, _ = fmt.Fprintf(l, "[%s::b]%c", colorName(glow[i%len(glow)]), r)
		i++
	}
	_, _ = fmt.Fprint(l, "[-:-:-]")
}
