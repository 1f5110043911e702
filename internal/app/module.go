package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/matheus3301/quickblessing/internal/bus"
	"github.com/matheus3301/quickblessing/internal/config"
	"github.com/matheus3301/quickblessing/internal/cooldown"
	"github.com/matheus3301/quickblessing/internal/cue"
	"github.com/matheus3301/quickblessing/internal/lock"
	"github.com/matheus3301/quickblessing/internal/logging"
	"github.com/matheus3301/quickblessing/internal/prefs"
	"github.com/matheus3301/quickblessing/internal/profile"
	"github.com/matheus3301/quickblessing/internal/store"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	Profile string
	Config  *config.Config
	// Player plays the blessing cue. Nil means cue.New(Config.SoundCommand, nil).
	Player cue.Player
	// LogConsole additionally receives human-readable log lines.
	LogConsole io.Writer
	// Dir overrides the profile directory; empty = profile.Dir(Profile).
	Dir string
}

func (p Params) dir() string {
	if p.Dir != "" {
		return p.Dir
	}
	return profile.Dir(p.Profile)
}

func (p Params) config() *config.Config {
	if p.Config == nil {
		return &config.Config{}
	}
	return p.Config
}

// Module returns the fx module composing storage, the cooldown manager and
// their lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("blessing",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideBus,
			provideLock,
			provideStore,
			providePrefs,
			provideManager,
		),
		fx.Invoke(registerLifecycle),
	)
}

// New builds an fx application around Module, routing fx's own events to
// the zap logger so nothing is printed on the terminal.
func New(p Params, extra ...fx.Option) *fx.App {
	opts := []fx.Option{
		Module(p),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
	}
	return fx.New(append(opts, extra...)...)
}

func provideLogger(p Params) (*zap.Logger, error) {
	logPath := profile.LogPath(p.Profile)
	if p.Dir != "" {
		logPath = filepath.Join(p.Dir, "logs", "blessing.log")
	}
	return logging.New(logPath, p.Profile, logging.Options{
		Level:   p.config().LogLevel,
		Console: p.LogConsole,
	})
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	logger.Debug("acquiring profile lock", zap.String("dir", p.dir()))
	l, err := lock.Acquire(p.dir())
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired", zap.String("path", l.Path()))
	return l, nil
}

// provideStore depends on the lock so the database is never opened by two
// writers.
func provideStore(p Params, _ *lock.Lock, logger *zap.Logger) (*store.DB, error) {
	dbPath := filepath.Join(p.dir(), "state.db")
	db, result, err := store.OpenMigrated(dbPath)
	if err != nil {
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Debug("migrations up to date", zap.Uint("version", result.Version))
	}
	return db, nil
}

func providePrefs(db *store.DB) *prefs.Prefs {
	return prefs.New(db)
}

func provideManager(p Params, pr *prefs.Prefs, db *store.DB, b *bus.Bus, logger *zap.Logger) *cooldown.Manager {
	player := p.Player
	if player == nil {
		player = cue.New(p.config().SoundCommand, nil)
	}
	return cooldown.New(pr,
		cooldown.WithJournal(db),
		cooldown.WithBus(b),
		cooldown.WithPlayer(player),
		cooldown.WithLogger(logger.Named("cooldown")),
	)
}

func registerLifecycle(lc fx.Lifecycle, mgr *cooldown.Manager, db *store.DB, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s := mgr.Restore()
			logger.Info("profile ready",
				zap.String("phase", string(s.Phase)),
				zap.Int("time_left", s.TimeLeft),
				zap.String("language", string(s.Language)),
				zap.String("theme", string(s.Theme)))
			return nil
		},
		OnStop: func(_ context.Context) error {
			_ = mgr.Close()
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("profile closed", zap.Int("pid", os.Getpid()))
			_ = logger.Sync()
			return nil
		},
	})
}
