package views

import (
	"strings"
	"unicode"
)

// glyphModifiers combine with the preceding glyph. tcell counts them as
// extra cells, which shifts everything after an icon that carries one.
var glyphModifiers = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200d, Hi: 0x200d, Stride: 1}, // zero width joiner
		{Lo: 0xfe00, Hi: 0xfe0f, Stride: 1}, // variation selectors
	},
	R32: []unicode.Range32{
		{Lo: 0x1f3fb, Hi: 0x1f3ff, Stride: 1}, // skin tones
		{Lo: 0xe0100, Hi: 0xe01ef, Stride: 1}, // variation selectors supplement
	},
}

// sanitizeForTerminal drops glyph modifiers, e.g. "☀️" becomes "☀".
func sanitizeForTerminal(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(glyphModifiers, r) {
			return -1
		}
		return r
	}, s)
}
