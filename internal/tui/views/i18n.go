package views

import "github.com/matheus3301/quickblessing/internal/prefs"

// Text holds the translated strings of the main page.
type Text struct {
	Title         string
	Disclaimer    string
	BlessMe       string
	TimeUntilNext string
}

var translations = map[prefs.Language]Text{
	prefs.Turkish: {
		Title:         "QuickBlessing",
		Disclaimer:    "Bu site tamamen eğlence amaçlı tasarlanmıştır.",
		BlessMe:       "Kutsanmak İçin Basınız",
		TimeUntilNext: "Tekrar kutsanmaya:",
	},
	prefs.English: {
		Title:         "QuickBlessing",
		Disclaimer:    "This site is designed purely for entertainment purposes.",
		BlessMe:       "Click to Be Blessed",
		TimeUntilNext: "Next blessing in:",
	},
}

// TextFor returns the strings for lang, falling back to Turkish.
func TextFor(lang prefs.Language) Text {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations[prefs.DefaultLanguage]
}
