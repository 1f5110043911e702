package views

import (
	"fmt"

	"github.com/matheus3301/quickblessing/internal/cooldown"
	"github.com/matheus3301/quickblessing/internal/prefs"
	"github.com/matheus3301/quickblessing/internal/tui/ui"
	"github.com/rivo/tview"
)

// Countdown is the card with the time left until the next blessing. It
// renders nothing while idle.
type Countdown struct {
	*tview.TextView
	theme    *ui.Theme
	lang     prefs.Language
	waiting  bool
	timeLeft int
}

// NewCountdown creates the countdown card.
func NewCountdown(theme *ui.Theme, lang prefs.Language) *Countdown {
	c := &Countdown{
		TextView: tview.NewTextView().
			SetDynamicColors(true).
			SetTextAlign(tview.AlignCenter),
		lang: lang,
	}
	c.ApplyTheme(theme)
	return c
}

// Name implements ui.Component.
func (c *Countdown) Name() string { return "Countdown" }

// Hints implements ui.Component.
func (c *Countdown) Hints() []ui.MenuHint { return nil }

// ApplyTheme implements ui.Component.
func (c *Countdown) ApplyTheme(theme *ui.Theme) {
	c.theme = theme
	c.SetBackgroundColor(theme.BgColor)
	c.SetTextColor(theme.FgColor)
	c.render()
}

// SetLanguage relabels the card.
func (c *Countdown) SetLanguage(lang prefs.Language) {
	c.lang = lang
	c.render()
}

// Update sets the remaining time.
func (c *Countdown) Update(waiting bool, timeLeft int) {
	c.waiting = waiting
	c.timeLeft = timeLeft
	c.render()
}

func (c *Countdown) render() {
	c.Clear()
	if !c.waiting {
		return
	}
	_, _ = fmt.Fprintf(c, "[::d]%s[-:-:-]\n[%s::b]%s[-:-:-]",
		tview.Escape(TextFor(c.lang).TimeUntilNext),
		ui.Tag(c.theme.CounterColor),
		cooldown.FormatTime(c.timeLeft))
}
