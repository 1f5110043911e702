package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/quickblessing/internal/tui/ui"
	"github.com/rivo/tview"
	"github.com/skip2/go-qrcode"
)

var notBlessedArt = []string{
	`    .-"""-.    `,
	`   /       \   `,
	`  |  o   o  |  `,
	`  |    ^    |  `,
	`  |  '---'  |  `,
	`   \       /   `,
	`    '-._.-'    `,
	`     /| |\     `,
	`    / | | \    `,
}

var blessedArt = []string{
	`  \  .-"""-.  / `,
	` -- /       \ --`,
	`   |  ^   ^  |  `,
	`   |    ^    |  `,
	`   |  \___/  |  `,
	`    \       /   `,
	`  /  '-._.-'  \ `,
	`      \| |/     `,
	`     \ | | /    `,
}

// Portrait is the central card. The blessed rendition is drawn in the glow
// palette and carries a QR certificate of the blessing id.
type Portrait struct {
	*tview.TextView
	theme      *ui.Theme
	blessed    bool
	blessingID string
}

// NewPortrait creates the portrait card.
func NewPortrait(theme *ui.Theme) *Portrait {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBorder(true)

	p := &Portrait{TextView: tv}
	p.ApplyTheme(theme)
	return p
}

// Name implements ui.Component.
func (p *Portrait) Name() string { return "Portrait" }

// Hints implements ui.Component.
func (p *Portrait) Hints() []ui.MenuHint { return nil }

// ApplyTheme implements ui.Component.
func (p *Portrait) ApplyTheme(theme *ui.Theme) {
	p.theme = theme
	p.SetBackgroundColor(theme.CardBgColor)
	p.SetTextColor(theme.FgColor)
	p.render()
}

// Update switches between the two renditions. blessingID may be empty.
func (p *Portrait) Update(blessed bool, blessingID string) {
	if p.blessed == blessed && p.blessingID == blessingID {
		return
	}
	p.blessed = blessed
	p.blessingID = blessingID
	p.render()
}

func (p *Portrait) render() {
	p.Clear()
	if !p.blessed {
		p.SetBorderColor(p.theme.BorderColor)
		p.SetTitle("")
		_, _ = fmt.Fprint(p, "\n"+strings.Join(notBlessedArt, "\n"))
		return
	}

	glow := p.theme.GlowColors
	p.SetBorderColor(glow[0])
	p.SetTitle(" ✦ ")
	p.SetTitleColor(glow[len(glow)-1])

	var sb strings.Builder
	sb.WriteString("\n")
	for i, line := range blessedArt {
		fmt.Fprintf(&sb, "[%s::b]%s[-:-:-]\n", ui.Tag(glow[i%len(glow)]), tview.Escape(line))
	}
	if p.blessingID != "" {
		sb.WriteString("\n")
		sb.WriteString(renderQR(p.blessingID))
		fmt.Fprintf(&sb, "[::d]%s[-:-:-]", p.blessingID)
	}
	_, _ = fmt.Fprint(p, sb.String())
}

// renderQR converts a string to a compact QR code using Unicode
// half-block characters.
func renderQR(content string) string {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "(QR generation failed: " + err.Error() + ")\n"
	}
	qr.DisableBorder = false

	bitmap := qr.Bitmap()
	rows := len(bitmap)
	cols := 0
	if rows > 0 {
		cols = len(bitmap[0])
	}

	var sb strings.Builder

	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x++ {
			top := bitmap[y][x]
			bot := false
			if y+1 < rows {
				bot = bitmap[y+1][x]
			}
			switch {
			case top && bot:
				sb.WriteRune('\u2588') // █
			case top && !bot:
				sb.WriteRune('\u2580') // ▀
			case !top && bot:
				sb.WriteRune('\u2584') // ▄
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}

	return sb.String()
}
