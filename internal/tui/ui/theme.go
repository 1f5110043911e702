package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/quickblessing/internal/prefs"
)

// Theme holds color constants for the TUI.
type Theme struct {
	Name              prefs.Theme
	BgColor           tcell.Color
	FgColor           tcell.Color
	CardBgColor       tcell.Color
	BorderColor       tcell.Color
	BorderFocusColor  tcell.Color
	TitleColor        tcell.Color
	GlowColors        []tcell.Color
	ButtonBg          tcell.Color
	ButtonFg          tcell.Color
	ButtonDisabledBg  tcell.Color
	ButtonDisabledFg  tcell.Color
	CounterColor      tcell.Color
	MenuKeyColor      tcell.Color
	NumericKeyColor   tcell.Color
	FlashInfoColor    tcell.Color
	FlashWarnColor    tcell.Color
	FlashErrColor     tcell.Color
	PromptBorderColor tcell.Color
}

// LightTheme is the warm amber palette.
func LightTheme() *Theme {
	return &Theme{
		Name:              prefs.Light,
		BgColor:           tcell.ColorLightYellow,
		FgColor:           tcell.ColorDarkSlateGray,
		CardBgColor:       tcell.ColorWhite,
		BorderColor:       tcell.ColorGoldenrod,
		BorderFocusColor:  tcell.ColorDarkOrange,
		TitleColor:        tcell.ColorDarkOrange,
		GlowColors:        []tcell.Color{tcell.ColorGold, tcell.ColorOrange, tcell.ColorDarkOrange},
		ButtonBg:          tcell.ColorOrange,
		ButtonFg:          tcell.ColorWhite,
		ButtonDisabledBg:  tcell.ColorSilver,
		ButtonDisabledFg:  tcell.ColorGray,
		CounterColor:      tcell.ColorDarkOrange,
		MenuKeyColor:      tcell.ColorDarkGoldenrod,
		NumericKeyColor:   tcell.ColorPurple,
		FlashInfoColor:    tcell.ColorDarkGreen,
		FlashWarnColor:    tcell.ColorDarkOrange,
		FlashErrColor:     tcell.ColorRed,
		PromptBorderColor: tcell.ColorGoldenrod,
	}
}

// DarkTheme is the indigo night palette.
func DarkTheme() *Theme {
	return &Theme{
		Name:              prefs.Dark,
		BgColor:           tcell.ColorMidnightBlue,
		FgColor:           tcell.ColorLavender,
		CardBgColor:       tcell.ColorDarkSlateGray,
		BorderColor:       tcell.ColorRebeccaPurple,
		BorderFocusColor:  tcell.ColorMediumPurple,
		TitleColor:        tcell.ColorGold,
		GlowColors:        []tcell.Color{tcell.ColorYellow, tcell.ColorGold, tcell.ColorOrange},
		ButtonBg:          tcell.ColorDarkViolet,
		ButtonFg:          tcell.ColorWhite,
		ButtonDisabledBg:  tcell.ColorDimGray,
		ButtonDisabledFg:  tcell.ColorSilver,
		CounterColor:      tcell.ColorGold,
		MenuKeyColor:      tcell.ColorMediumPurple,
		NumericKeyColor:   tcell.ColorFuchsia,
		FlashInfoColor:    tcell.ColorNavajoWhite,
		FlashWarnColor:    tcell.ColorOrange,
		FlashErrColor:     tcell.ColorOrangeRed,
		PromptBorderColor: tcell.ColorMediumPurple,
	}
}

// ForTheme returns the palette for t.
func ForTheme(t prefs.Theme) *Theme {
	if t == prefs.Dark {
		return DarkTheme()
	}
	return LightTheme()
}

// Icon is the toggle glyph shown for the theme: a moon offers dark mode, a
// sun offers light mode.
func (t *Theme) Icon() string {
	if t.Name == prefs.Dark {
		return "☀"
	}
	return "☾"
}

// colorName returns a tview-compatible color name string.
func colorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}

// Tag returns c as a tview color tag name, e.g. for "[gold]...[-]".
func Tag(c tcell.Color) string {
	return colorName(c)
}
