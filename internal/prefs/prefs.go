// Package prefs is the typed accessor layer over the persisted key-value
// store. Every string conversion of a persisted value happens here.
package prefs

import (
	"strconv"
	"time"
)

// Persisted keys.
const (
	KeyLanguage = "language"
	KeyTheme    = "theme"
	KeyBlessed  = "isBlessed"
	KeyWaiting  = "isWaiting"
	KeyEndTime  = "endTime"
)

// CooldownKeys are removed together when a cooldown expires.
var CooldownKeys = []string{KeyEndTime, KeyWaiting, KeyBlessed}

// KV is a string-only persisted key-value store.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(keys ...string) error
}

// Language is the UI language.
type Language string

const (
	Turkish Language = "tr"
	English Language = "en"
)

// DefaultLanguage is used when nothing valid is stored.
const DefaultLanguage = Turkish

// ParseLanguage reports whether s names a supported language.
func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case Turkish, English:
		return Language(s), true
	}
	return "", false
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == Turkish {
		return English
	}
	return Turkish
}

// Theme is the UI color theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// DefaultTheme is used when nothing valid is stored.
const DefaultTheme = Light

// ParseTheme reports whether s names a supported theme.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Prefs reads and writes typed values through a KV. Reads never fail: a
// missing, unreadable or malformed value yields the default.
type Prefs struct {
	kv KV
}

// New wraps kv.
func New(kv KV) *Prefs {
	return &Prefs{kv: kv}
}

func (p *Prefs) get(key string) (string, bool) {
	v, ok, err := p.kv.Get(key)
	if err != nil {
		return "", false
	}
	return v, ok
}

// Language returns the stored language or DefaultLanguage.
func (p *Prefs) Language() Language {
	v, _ := p.get(KeyLanguage)
	if l, ok := ParseLanguage(v); ok {
		return l
	}
	return DefaultLanguage
}

// SetLanguage persists l.
func (p *Prefs) SetLanguage(l Language) error {
	return p.kv.Set(KeyLanguage, string(l))
}

// Theme returns the stored theme or DefaultTheme.
func (p *Prefs) Theme() Theme {
	v, _ := p.get(KeyTheme)
	if t, ok := ParseTheme(v); ok {
		return t
	}
	return DefaultTheme
}

// SetTheme persists t.
func (p *Prefs) SetTheme(t Theme) error {
	return p.kv.Set(KeyTheme, string(t))
}

// Blessed reports whether the blessed flag is stored as the literal "true".
func (p *Prefs) Blessed() bool {
	return p.flag(KeyBlessed)
}

// SetBlessed persists the blessed flag.
func (p *Prefs) SetBlessed(v bool) error {
	return p.kv.Set(KeyBlessed, FormatBool(v))
}

// Waiting reports whether the waiting flag is stored as the literal "true".
func (p *Prefs) Waiting() bool {
	return p.flag(KeyWaiting)
}

// SetWaiting persists the waiting flag.
func (p *Prefs) SetWaiting(v bool) error {
	return p.kv.Set(KeyWaiting, FormatBool(v))
}

// EndTime returns the stored cooldown end. ok is false when the key is
// missing or not a decimal epoch-millisecond integer.
func (p *Prefs) EndTime() (time.Time, bool) {
	v, found := p.get(KeyEndTime)
	if !found {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// SetEndTime persists t as epoch milliseconds.
func (p *Prefs) SetEndTime(t time.Time) error {
	return p.kv.Set(KeyEndTime, strconv.FormatInt(t.UnixMilli(), 10))
}

// ClearCooldown removes every cooldown key.
func (p *Prefs) ClearCooldown() error {
	return p.kv.Remove(CooldownKeys...)
}

func (p *Prefs) flag(key string) bool {
	v, _ := p.get(key)
	return ParseBool(v)
}

// ParseBool is true only for the exact text "true".
func ParseBool(s string) bool {
	return s == "true"
}

// FormatBool renders v as "true" or "false".
func FormatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
