package cooldown

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/quickblessing/internal/bus"
	"github.com/matheus3301/quickblessing/internal/cue"
	"github.com/matheus3301/quickblessing/internal/prefs"
	"github.com/matheus3301/quickblessing/internal/status"
	"github.com/matheus3301/quickblessing/internal/store"
	"go.uber.org/zap"
)

// memKV is an in-memory prefs.KV.
type memKV struct {
	mu      sync.Mutex
	data    map[string]string
	failSet bool
}

func newMemKV() *memKV { return &memKV{data: make(map[string]string)} }

func (kv *memKV) Get(key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.data[key]
	return v, ok, nil
}

func (kv *memKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.failSet {
		return errors.New("read-only storage")
	}
	kv.data[key] = value
	return nil
}

func (kv *memKV) Remove(keys ...string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	for _, k := range keys {
		delete(kv.data, k)
	}
	return nil
}

func (kv *memKV) raw(key string) (string, bool) {
	v, ok, _ := kv.Get(key)
	return v, ok
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

type memJournal struct {
	mu      sync.Mutex
	entries []store.Blessing
}

func (j *memJournal) RecordBlessing(b *store.Blessing) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, *b)
	return nil
}

func (j *memJournal) ListBlessings(limit int) ([]store.Blessing, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []store.Blessing
	for i := len(j.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, j.entries[i])
	}
	return out, nil
}

var epoch = time.UnixMilli(1_700_000_000_000)

type fixture struct {
	kv      *memKV
	clock   *fakeClock
	journal *memJournal
	bus     *bus.Bus
	mgr     *Manager
}

// newFixture builds a manager whose background loop effectively never fires,
// so tests drive the countdown with Tick.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		kv:      newMemKV(),
		clock:   &fakeClock{now: epoch},
		journal: &memJournal{},
		bus:     bus.New(),
	}
	base := []Option{
		WithClock(f.clock),
		WithJournal(f.journal),
		WithBus(f.bus),
		WithTickInterval(time.Hour),
		WithLogger(zap.NewNop()),
	}
	f.mgr = New(prefs.New(f.kv), append(base, opts...)...)
	t.Cleanup(func() { _ = f.mgr.Close() })
	return f
}

func (f *fixture) persistEnd(t *testing.T, end time.Time) {
	t.Helper()
	f.kv.data[prefs.KeyEndTime] = strconv.FormatInt(end.UnixMilli(), 10)
}

func TestRestoreEmptyStorage(t *testing.T) {
	f := newFixture(t)

	s := f.mgr.Restore()
	if s.Waiting() || s.Blessed || s.TimeLeft != 0 {
		t.Errorf("state = %+v, want idle", s)
	}
	if s.Language != prefs.Turkish || s.Theme != prefs.Light {
		t.Errorf("language/theme = %s/%s, want defaults", s.Language, s.Theme)
	}
}

func TestBlessFromIdle(t *testing.T) {
	played := make(chan struct{}, 1)
	f := newFixture(t, WithPlayer(cue.PlayerFunc(func(context.Context) error {
		played <- struct{}{}
		return nil
	})))
	f.mgr.Restore()

	ok, err := f.mgr.Bless()
	if err != nil {
		t.Fatalf("Bless() error = %v", err)
	}
	if !ok {
		t.Fatal("Bless() from idle was rejected")
	}

	s := f.mgr.State()
	if s.Phase != status.CoolingDown || !s.Blessed || s.TimeLeft != WaitSeconds {
		t.Errorf("state = %+v, want cooling down with 600s", s)
	}
	if !s.EndTime.Equal(epoch.Add(600 * time.Second)) {
		t.Errorf("EndTime = %v, want now+600s", s.EndTime)
	}

	if v, _ := f.kv.raw(prefs.KeyEndTime); v != strconv.FormatInt(epoch.UnixMilli()+600000, 10) {
		t.Errorf("persisted endTime = %q", v)
	}
	if v, _ := f.kv.raw(prefs.KeyBlessed); v != "true" {
		t.Errorf("persisted isBlessed = %q, want true", v)
	}
	if v, _ := f.kv.raw(prefs.KeyWaiting); v != "true" {
		t.Errorf("persisted isWaiting = %q, want true", v)
	}

	if len(f.journal.entries) != 1 || f.journal.entries[0].ID != s.BlessingID {
		t.Errorf("journal = %+v, want one entry with id %s", f.journal.entries, s.BlessingID)
	}

	select {
	case <-played:
	case <-time.After(time.Second):
		t.Error("cue was not played")
	}
}

func TestBlessWhileCoolingDownIsNoop(t *testing.T) {
	f := newFixture(t)
	f.mgr.Restore()
	if _, err := f.mgr.Bless(); err != nil {
		t.Fatal(err)
	}
	f.mgr.Tick()
	f.clock.now = epoch.Add(5 * time.Second)
	before := f.mgr.State()
	rawBefore, _ := f.kv.raw(prefs.KeyEndTime)

	ok, err := f.mgr.Bless()
	if err != nil {
		t.Fatalf("Bless() error = %v", err)
	}
	if ok {
		t.Error("Bless() while cooling down should be rejected")
	}
	if after := f.mgr.State(); after != before {
		t.Errorf("state changed: %+v -> %+v", before, after)
	}
	if rawAfter, _ := f.kv.raw(prefs.KeyEndTime); rawAfter != rawBefore {
		t.Errorf("endTime changed: %s -> %s", rawBefore, rawAfter)
	}
	if len(f.journal.entries) != 1 {
		t.Errorf("journal has %d entries, want 1", len(f.journal.entries))
	}
}

func TestTickCountsDownToIdle(t *testing.T) {
	f := newFixture(t)
	f.mgr.Restore()
	if _, err := f.mgr.Bless(); err != nil {
		t.Fatal(err)
	}

	prev := WaitSeconds
	for i := 0; i < WaitSeconds-1; i++ {
		s := f.mgr.Tick()
		if s.TimeLeft != prev-1 {
			t.Fatalf("tick %d: TimeLeft = %d, want %d", i, s.TimeLeft, prev-1)
		}
		if !s.Waiting() || !s.Blessed {
			t.Fatalf("tick %d: left cooldown early: %+v", i, s)
		}
		prev = s.TimeLeft
	}
	if prev != 1 {
		t.Fatalf("TimeLeft before final tick = %d, want 1", prev)
	}

	s := f.mgr.Tick()
	if s.Waiting() || s.Blessed || s.TimeLeft != 0 || s.Phase != status.Idle {
		t.Errorf("after final tick state = %+v, want idle", s)
	}
	for _, k := range prefs.CooldownKeys {
		if _, ok := f.kv.raw(k); ok {
			t.Errorf("key %q still persisted after expiry", k)
		}
	}

	// Extra ticks while idle do nothing.
	if s := f.mgr.Tick(); s.Waiting() || s.TimeLeft != 0 {
		t.Errorf("tick while idle changed state: %+v", s)
	}
}

func TestNeverZeroWhileWaiting(t *testing.T) {
	f := newFixture(t)
	ch, unsub := f.bus.Subscribe("cooldown.", 1024)
	defer unsub()

	f.mgr.Restore()
	if _, err := f.mgr.Bless(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < WaitSeconds; i++ {
		s := f.mgr.Tick()
		if s.Waiting() && s.TimeLeft <= 0 {
			t.Fatalf("observed waiting with TimeLeft=%d", s.TimeLeft)
		}
	}

	var expired bool
	for len(ch) > 0 {
		evt := <-ch
		switch evt.Kind {
		case bus.KindTick:
			if evt.Payload.(int) <= 0 {
				t.Errorf("tick event with TimeLeft=%v", evt.Payload)
			}
		case bus.KindExpired:
			expired = true
		}
	}
	if !expired {
		t.Error("no expired event published")
	}
}

func TestBlessAgainAfterExpiry(t *testing.T) {
	f := newFixture(t)
	f.mgr.Restore()
	if _, err := f.mgr.Bless(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < WaitSeconds; i++ {
		f.mgr.Tick()
	}

	f.clock.now = epoch.Add(20 * time.Minute)
	ok, err := f.mgr.Bless()
	if err != nil || !ok {
		t.Fatalf("Bless() after expiry = %v, %v", ok, err)
	}
	if s := f.mgr.State(); s.TimeLeft != WaitSeconds || !s.EndTime.Equal(f.clock.now.Add(Duration)) {
		t.Errorf("state = %+v", s)
	}
}

func TestRestoreFutureEndTime(t *testing.T) {
	tests := []struct {
		name  string
		ahead time.Duration
		want  int
	}{
		{"exact", 600 * time.Second, 600},
		{"ten minutes ten", 610 * time.Second, 610},
		{"fractional floors", 599*time.Second + 900*time.Millisecond, 599},
		{"just over one second", 1500 * time.Millisecond, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.persistEnd(t, epoch.Add(tt.ahead))
			f.kv.data[prefs.KeyBlessed] = "true"

			s := f.mgr.Restore()
			if !s.Waiting() || s.TimeLeft != tt.want {
				t.Errorf("state = %+v, want waiting with %d", s, tt.want)
			}
			if !s.Blessed {
				t.Error("blessed flag not restored")
			}
		})
	}
}

func TestRestoreBlessedFollowsPersistedFlag(t *testing.T) {
	f := newFixture(t)
	f.persistEnd(t, epoch.Add(time.Minute))
	f.kv.data[prefs.KeyBlessed] = "TRUE"

	s := f.mgr.Restore()
	if !s.Waiting() {
		t.Fatal("should be waiting")
	}
	if s.Blessed {
		t.Error("only the literal \"true\" counts as blessed")
	}
}

func TestRestorePastEndTime(t *testing.T) {
	tests := []struct {
		name  string
		ahead time.Duration
	}{
		{"long past", -time.Hour},
		{"just now", 0},
		{"under one second", 999 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.persistEnd(t, epoch.Add(tt.ahead))
			f.kv.data[prefs.KeyBlessed] = "true"
			f.kv.data[prefs.KeyWaiting] = "true"

			s := f.mgr.Restore()
			if s.Waiting() || s.Blessed || s.TimeLeft != 0 {
				t.Errorf("state = %+v, want idle", s)
			}
			for _, k := range prefs.CooldownKeys {
				if _, ok := f.kv.raw(k); ok {
					t.Errorf("stale key %q not purged", k)
				}
			}

			ok, err := f.mgr.Bless()
			if err != nil || !ok {
				t.Errorf("Bless() after stale restore = %v, %v", ok, err)
			}
		})
	}
}

func TestRestoreMalformedEndTime(t *testing.T) {
	f := newFixture(t)
	f.kv.data[prefs.KeyEndTime] = "tomorrow"
	f.kv.data[prefs.KeyWaiting] = "true"

	s := f.mgr.Restore()
	if s.Waiting() || s.TimeLeft != 0 {
		t.Errorf("state = %+v, want idle", s)
	}
}

func TestRestoreIdempotent(t *testing.T) {
	for _, ahead := range []time.Duration{-time.Minute, 5 * time.Minute} {
		f := newFixture(t)
		f.persistEnd(t, epoch.Add(ahead))
		f.kv.data[prefs.KeyBlessed] = "true"
		f.kv.data[prefs.KeyLanguage] = "en"

		first := f.mgr.Restore()
		second := f.mgr.Restore()
		if first != second {
			t.Errorf("ahead=%v: Restore() not idempotent: %+v vs %+v", ahead, first, second)
		}
	}
}

func TestRestoreAfterRestart(t *testing.T) {
	f := newFixture(t)
	f.mgr.Restore()
	if _, err := f.mgr.Bless(); err != nil {
		t.Fatal(err)
	}
	id := f.mgr.State().BlessingID
	_ = f.mgr.Close()

	// A fresh process four minutes later over the same storage.
	f.clock.now = epoch.Add(4 * time.Minute)
	next := New(prefs.New(f.kv),
		WithClock(f.clock), WithJournal(f.journal), WithTickInterval(time.Hour))
	defer func() { _ = next.Close() }()

	s := next.Restore()
	if !s.Waiting() || !s.Blessed || s.TimeLeft != 360 {
		t.Errorf("state = %+v, want blessed and waiting with 360s", s)
	}
	if s.BlessingID != id {
		t.Errorf("BlessingID = %q, want %q", s.BlessingID, id)
	}
}

func TestCueFailureDoesNotAffectState(t *testing.T) {
	failed := make(chan struct{})
	f := newFixture(t, WithPlayer(cue.PlayerFunc(func(context.Context) error {
		defer close(failed)
		return errors.New("no audio device")
	})))
	f.mgr.Restore()

	ok, err := f.mgr.Bless()
	if err != nil || !ok {
		t.Fatalf("Bless() = %v, %v; cue failure must not surface", ok, err)
	}
	<-failed
	if s := f.mgr.State(); !s.Waiting() || s.TimeLeft != WaitSeconds {
		t.Errorf("state = %+v after cue failure", s)
	}
}

func TestBlessPersistFailureKeepsTransition(t *testing.T) {
	f := newFixture(t)
	f.mgr.Restore()
	f.kv.failSet = true

	ok, err := f.mgr.Bless()
	if !ok {
		t.Fatal("Bless() should still be accepted")
	}
	if err == nil {
		t.Error("Bless() should report the storage failure")
	}
	if s := f.mgr.State(); !s.Waiting() {
		t.Errorf("state = %+v, transition should stand", s)
	}
}

func TestPreferencesPersistImmediately(t *testing.T) {
	f := newFixture(t)
	f.mgr.Restore()

	lang, err := f.mgr.ToggleLanguage()
	if err != nil || lang != prefs.English {
		t.Fatalf("ToggleLanguage() = %v, %v", lang, err)
	}
	if v, _ := f.kv.raw(prefs.KeyLanguage); v != "en" {
		t.Errorf("persisted language = %q, want en", v)
	}

	theme, err := f.mgr.ToggleTheme()
	if err != nil || theme != prefs.Dark {
		t.Fatalf("ToggleTheme() = %v, %v", theme, err)
	}
	if v, _ := f.kv.raw(prefs.KeyTheme); v != "dark" {
		t.Errorf("persisted theme = %q, want dark", v)
	}

	if err := f.mgr.SetLanguage(prefs.Turkish); err != nil {
		t.Fatal(err)
	}
	if err := f.mgr.SetTheme(prefs.Light); err != nil {
		t.Fatal(err)
	}
	s := f.mgr.State()
	if s.Language != prefs.Turkish || s.Theme != prefs.Light {
		t.Errorf("state language/theme = %s/%s", s.Language, s.Theme)
	}
	if v, _ := f.kv.raw(prefs.KeyTheme); v != "light" {
		t.Errorf("persisted theme = %q, want light", v)
	}
}

func TestLoopDrivesCountdown(t *testing.T) {
	f := newFixture(t, WithTickInterval(5*time.Millisecond))
	ch, unsub := f.bus.Subscribe(bus.KindExpired, 1)
	defer unsub()

	f.persistEnd(t, epoch.Add(3*time.Second))
	f.kv.data[prefs.KeyBlessed] = "true"
	if s := f.mgr.Restore(); s.TimeLeft != 3 {
		t.Fatalf("TimeLeft = %d, want 3", s.TimeLeft)
	}

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("cooldown did not expire")
	}
	if s := f.mgr.State(); s.Waiting() || s.TimeLeft != 0 {
		t.Errorf("state = %+v, want idle", s)
	}
}

func TestCloseStopsLoop(t *testing.T) {
	f := newFixture(t, WithTickInterval(time.Millisecond))
	f.mgr.Restore()
	if _, err := f.mgr.Bless(); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)

	if err := f.mgr.Close(); err != nil {
		t.Fatal(err)
	}
	frozen := f.mgr.State().TimeLeft
	time.Sleep(20 * time.Millisecond)
	if got := f.mgr.State().TimeLeft; got != frozen {
		t.Errorf("TimeLeft moved after Close: %d -> %d", frozen, got)
	}
	if frozen >= WaitSeconds {
		t.Errorf("loop never ticked: TimeLeft = %d", frozen)
	}

	if ok, _ := f.mgr.Bless(); ok {
		t.Error("Bless() after Close should be ignored")
	}
	// Close is idempotent.
	if err := f.mgr.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPeekHasNoSideEffects(t *testing.T) {
	kv := newMemKV()
	kv.data[prefs.KeyEndTime] = strconv.FormatInt(epoch.Add(-time.Minute).UnixMilli(), 10)
	kv.data[prefs.KeyWaiting] = "true"
	kv.data[prefs.KeyTheme] = "dark"

	s := Peek(prefs.New(kv), epoch)
	if s.Waiting() || s.TimeLeft != 0 {
		t.Errorf("Peek() = %+v, want idle", s)
	}
	if s.Theme != prefs.Dark {
		t.Errorf("Theme = %s, want dark", s.Theme)
	}
	if _, ok := kv.raw(prefs.KeyEndTime); !ok {
		t.Error("Peek() must not purge stale keys")
	}

	kv.data[prefs.KeyEndTime] = strconv.FormatInt(epoch.Add(90*time.Second).UnixMilli(), 10)
	if s := Peek(prefs.New(kv), epoch); !s.Waiting() || s.TimeLeft != 90 {
		t.Errorf("Peek() = %+v, want waiting with 90s", s)
	}
}
