package prefs

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheus3301/quickblessing/internal/store"
)

func testPrefs(t *testing.T) (*Prefs, *store.DB) {
	t.Helper()
	db, _, err := store.OpenMigrated(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db), db
}

func TestDefaults(t *testing.T) {
	p, _ := testPrefs(t)

	if p.Language() != Turkish {
		t.Errorf("Language() = %q, want tr", p.Language())
	}
	if p.Theme() != Light {
		t.Errorf("Theme() = %q, want light", p.Theme())
	}
	if p.Blessed() || p.Waiting() {
		t.Error("flags should default to false")
	}
	if _, ok := p.EndTime(); ok {
		t.Error("EndTime() should be absent")
	}
}

func TestRoundTrip(t *testing.T) {
	p, db := testPrefs(t)

	end := time.UnixMilli(1700000600000)
	steps := []error{
		p.SetLanguage(English),
		p.SetTheme(Dark),
		p.SetBlessed(true),
		p.SetWaiting(true),
		p.SetEndTime(end),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if p.Language() != English || p.Theme() != Dark {
		t.Errorf("language/theme = %s/%s, want en/dark", p.Language(), p.Theme())
	}
	if !p.Blessed() || !p.Waiting() {
		t.Error("flags should read back true")
	}
	got, ok := p.EndTime()
	if !ok || !got.Equal(end) {
		t.Errorf("EndTime() = %v, %v; want %v", got, ok, end)
	}

	raw, _, _ := db.Get(KeyEndTime)
	if raw != "1700000600000" {
		t.Errorf("raw endTime = %q, want epoch milliseconds", raw)
	}
	raw, _, _ = db.Get(KeyBlessed)
	if raw != "true" {
		t.Errorf("raw isBlessed = %q, want \"true\"", raw)
	}
}

func TestLiteralBooleans(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"true", true},
		{"false", false},
		{"TRUE", false},
		{"True", false},
		{"1", false},
		{" true", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p, db := testPrefs(t)
			if err := db.Set(KeyWaiting, tt.raw); err != nil {
				t.Fatal(err)
			}
			if got := p.Waiting(); got != tt.want {
				t.Errorf("Waiting() with %q = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMalformedValuesFallBack(t *testing.T) {
	p, db := testPrefs(t)

	_ = db.Set(KeyLanguage, "de")
	_ = db.Set(KeyTheme, "sepia")
	_ = db.Set(KeyEndTime, "soon")

	if p.Language() != DefaultLanguage {
		t.Errorf("Language() = %q, want default", p.Language())
	}
	if p.Theme() != DefaultTheme {
		t.Errorf("Theme() = %q, want default", p.Theme())
	}
	if _, ok := p.EndTime(); ok {
		t.Error("malformed endTime should read as absent")
	}
}

func TestClearCooldown(t *testing.T) {
	p, db := testPrefs(t)

	_ = p.SetLanguage(English)
	_ = p.SetBlessed(true)
	_ = p.SetWaiting(true)
	_ = p.SetEndTime(time.Now())

	if err := p.ClearCooldown(); err != nil {
		t.Fatal(err)
	}

	all, err := db.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[KeyLanguage] != "en" {
		t.Errorf("remaining keys = %v, want only language", all)
	}
}

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingKV) Set(string, string) error          { return errors.New("disk on fire") }
func (failingKV) Remove(...string) error            { return errors.New("disk on fire") }

func TestReadErrorsDegradeToDefaults(t *testing.T) {
	p := New(failingKV{})

	if p.Language() != DefaultLanguage || p.Theme() != DefaultTheme {
		t.Error("read errors should yield defaults")
	}
	if p.Blessed() {
		t.Error("read error should yield not blessed")
	}
	if err := p.SetTheme(Dark); err == nil {
		t.Error("SetTheme() should surface write errors")
	}
}

func TestToggle(t *testing.T) {
	if Turkish.Toggle() != English || English.Toggle() != Turkish {
		t.Error("language toggle broken")
	}
	if Light.Toggle() != Dark || Dark.Toggle() != Light {
		t.Error("theme toggle broken")
	}
}

func TestParse(t *testing.T) {
	if _, ok := ParseLanguage("en"); !ok {
		t.Error("ParseLanguage(en) should succeed")
	}
	if _, ok := ParseLanguage("EN"); ok {
		t.Error("ParseLanguage(EN) should fail")
	}
	if _, ok := ParseTheme("dark"); !ok {
		t.Error("ParseTheme(dark) should succeed")
	}
	if _, ok := ParseTheme(""); ok {
		t.Error("ParseTheme(\"\") should fail")
	}
}
