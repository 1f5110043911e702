package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// ProfileData holds profile facts for display.
type ProfileData struct {
	Profile   string
	Phase     string
	Blessings int
	EndsAt    time.Time
}

// ProfileInfo is a small key/value panel about the active profile.
type ProfileInfo struct {
	*tview.TextView
	theme *Theme
	data  *ProfileData
}

// NewProfileInfo creates a new profile info panel.
func NewProfileInfo(theme *Theme) *ProfileInfo {
	pi := &ProfileInfo{
		TextView: tview.NewTextView().SetDynamicColors(true),
	}
	pi.SetBorderPadding(0, 0, 1, 1)
	pi.ApplyTheme(theme)
	return pi
}

// ApplyTheme recolors the panel.
func (pi *ProfileInfo) ApplyTheme(theme *Theme) {
	pi.theme = theme
	pi.SetBackgroundColor(theme.BgColor)
	pi.Update(pi.data)
}

// Update renders data. A nil value clears the panel.
func (pi *ProfileInfo) Update(data *ProfileData) {
	pi.data = data
	pi.Clear()
	if data == nil {
		return
	}

	fg := colorName(pi.theme.FgColor)
	counter := colorName(pi.theme.CounterColor)

	ends := "-"
	if !data.EndsAt.IsZero() {
		ends = data.EndsAt.Format("15:04:05")
	}

	_, _ = fmt.Fprintf(pi,
		"[%s::b]Profile:[-:-:-]   [%s]%s[-]\n"+
			"[%s::b]Phase:[-:-:-]     [%s]%s[-]\n"+
			"[%s::b]Blessings:[-:-:-] [%s]%d[-]\n"+
			"[%s::b]Ends:[-:-:-]      [%s]%s[-]",
		fg, counter, tview.Escape(data.Profile),
		fg, counter, data.Phase,
		fg, counter, data.Blessings,
		fg, counter, ends,
	)
}
