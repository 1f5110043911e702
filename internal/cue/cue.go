// Package cue plays the short audio cue that accompanies a blessing.
package cue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/matheus3301/quickblessing/internal/bus"
	"go.uber.org/zap"
)

// Timeout bounds a single playback started by Fire.
const Timeout = 15 * time.Second

// Player plays the cue once.
type Player interface {
	Play(ctx context.Context) error
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(ctx context.Context) error

// Play calls f.
func (f PlayerFunc) Play(ctx context.Context) error { return f(ctx) }

type nopPlayer struct{}

func (nopPlayer) Play(context.Context) error { return nil }

// Nop plays nothing.
var Nop Player = nopPlayer{}

// BellPlayer rings the terminal bell on W.
type BellPlayer struct {
	W io.Writer
}

// Play writes a BEL character.
func (b BellPlayer) Play(context.Context) error {
	_, err := io.WriteString(b.W, "\a")
	return err
}

// CommandPlayer runs an external audio player, e.g. paplay or afplay.
type CommandPlayer struct {
	Argv []string
}

// Play runs the command to completion or until ctx is done.
func (c CommandPlayer) Play(ctx context.Context) error {
	if len(c.Argv) == 0 {
		return errors.New("empty sound command")
	}
	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", c.Argv[0], err, out)
	}
	return nil
}

// New returns a CommandPlayer for argv, or a BellPlayer on fallback when
// argv is empty.
func New(argv []string, fallback io.Writer) Player {
	if len(argv) > 0 {
		return CommandPlayer{Argv: argv}
	}
	if fallback == nil {
		return Nop
	}
	return BellPlayer{W: fallback}
}

// Fire starts p in its own goroutine and returns immediately. A failure is
// logged and published as cue.failed; it never reaches the caller.
func Fire(p Player, b *bus.Bus, logger *zap.Logger) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), Timeout)
		defer cancel()
		if err := p.Play(ctx); err != nil {
			logger.Warn("blessing cue could not be played", zap.Error(err))
			b.Emit(bus.KindCueFailed, err.Error())
		}
	}()
}
