package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheus3301/quickblessing/internal/bus"
	"github.com/matheus3301/quickblessing/internal/cooldown"
	"github.com/matheus3301/quickblessing/internal/cue"
	"github.com/matheus3301/quickblessing/internal/lock"
	"github.com/matheus3301/quickblessing/internal/prefs"
	"github.com/matheus3301/quickblessing/internal/store"
	"go.uber.org/fx"
)

func testParams(t *testing.T) Params {
	t.Helper()
	return Params{
		Profile: "test",
		Player:  cue.Nop,
		Dir:     filepath.Join(t.TempDir(), "profiles", "test"),
	}
}

func start(t *testing.T, p Params, targets ...any) *fx.App {
	t.Helper()
	a := New(p, fx.Populate(targets...))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return a
}

func stop(t *testing.T, a *fx.App) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestModuleLifecycle(t *testing.T) {
	p := testParams(t)

	var mgr *cooldown.Manager
	var b *bus.Bus
	a := start(t, p, &mgr, &b)

	ch, unsub := b.Subscribe("cooldown.blessed", 1)
	defer unsub()

	ok, err := mgr.Bless()
	if err != nil || !ok {
		t.Fatalf("Bless() = %v, %v", ok, err)
	}
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Error("no blessed event on the shared bus")
	}
	stop(t, a)

	// The cooldown survives a restart of the whole graph.
	var restored *cooldown.Manager
	var db *store.DB
	a = start(t, p, &restored, &db)
	defer stop(t, a)

	s := restored.State()
	if !s.Waiting() || !s.Blessed {
		t.Errorf("restored state = %+v, want blessed and waiting", s)
	}
	if s.TimeLeft < cooldown.WaitSeconds-5 || s.TimeLeft > cooldown.WaitSeconds {
		t.Errorf("restored TimeLeft = %d", s.TimeLeft)
	}
	n, err := db.CountBlessings()
	if err != nil || n != 1 {
		t.Errorf("CountBlessings() = %d, %v; want 1", n, err)
	}
}

func TestModuleHoldsProfileLock(t *testing.T) {
	p := testParams(t)

	a := start(t, p)
	defer stop(t, a)

	_, err := lock.Acquire(p.Dir)
	var held *lock.LockHeldError
	if !errors.As(err, &held) {
		t.Fatalf("Acquire() while module running = %v, want LockHeldError", err)
	}

	second := New(p)
	if err := second.Err(); err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = second.Start(ctx)
		if err == nil {
			_ = second.Stop(ctx)
			t.Fatal("second module on the same profile should fail")
		}
	}
}

func TestModulePreferences(t *testing.T) {
	p := testParams(t)

	var mgr *cooldown.Manager
	a := start(t, p, &mgr)
	if _, err := mgr.ToggleTheme(); err != nil {
		t.Fatal(err)
	}
	stop(t, a)

	var pr *prefs.Prefs
	a = start(t, p, &pr)
	defer stop(t, a)
	if pr.Theme() != prefs.Dark {
		t.Errorf("Theme() after restart = %s, want dark", pr.Theme())
	}
}
