package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/quickblessing/internal/app"
	"github.com/matheus3301/quickblessing/internal/bus"
	"github.com/matheus3301/quickblessing/internal/config"
	"github.com/matheus3301/quickblessing/internal/cooldown"
	"github.com/matheus3301/quickblessing/internal/cue"
	"github.com/matheus3301/quickblessing/internal/lock"
	"github.com/matheus3301/quickblessing/internal/profile"
	"github.com/matheus3301/quickblessing/internal/store"
	"github.com/matheus3301/quickblessing/internal/tui"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	flag.Parse()

	name := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(name); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg := config.LoadOrDefault(profile.ConfigPath())

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: open terminal: %v\n", err)
		os.Exit(1)
	}

	// The terminal bell is the cue unless an external player is configured.
	var player cue.Player = cue.PlayerFunc(func(context.Context) error {
		return screen.Beep()
	})
	if len(cfg.SoundCommand) > 0 {
		player = cue.New(cfg.SoundCommand, nil)
	}

	var (
		mgr    *cooldown.Manager
		b      *bus.Bus
		db     *store.DB
		logger *zap.Logger
	)
	fxApp := app.New(app.Params{
		Profile: name,
		Config:  cfg,
		Player:  player,
	}, fx.Populate(&mgr, &b, &db, &logger))

	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		var held *lock.LockHeldError
		if errors.As(err, &held) {
			fmt.Fprintf(os.Stderr, "error: profile %q is already open (pid %d)\n", name, held.PID)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}

	ui := tui.NewApp(mgr, b, db, name, logger)
	ui.SetScreen(screen)
	runErr := ui.Run()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := fxApp.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "error: shutdown: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}
