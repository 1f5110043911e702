// Package cooldown gates the bless action behind a fixed cooldown that
// survives restarts.
package cooldown

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/quickblessing/internal/bus"
	"github.com/matheus3301/quickblessing/internal/cue"
	"github.com/matheus3301/quickblessing/internal/prefs"
	"github.com/matheus3301/quickblessing/internal/status"
	"github.com/matheus3301/quickblessing/internal/store"
	"go.uber.org/zap"
)

const (
	// WaitSeconds is the cooldown length after a blessing.
	WaitSeconds = 600
	// Duration is WaitSeconds as a time.Duration.
	Duration = WaitSeconds * time.Second
	// TickInterval is the countdown resolution.
	TickInterval = time.Second
)

// Journal records accepted blessings.
type Journal interface {
	RecordBlessing(b *store.Blessing) error
	ListBlessings(limit int) ([]store.Blessing, error)
}

// State is a point-in-time view of the manager.
type State struct {
	Phase    status.Phase
	Blessed  bool
	TimeLeft int
	EndTime  time.Time
	Language prefs.Language
	Theme    prefs.Theme
	// BlessingID identifies the journal entry of the running cooldown.
	BlessingID string
}

// Waiting reports whether a cooldown is active.
func (s State) Waiting() bool {
	return s.Phase == status.CoolingDown
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option { return func(m *Manager) { m.clock = c } }

// WithTickInterval replaces the one-second countdown interval.
func WithTickInterval(d time.Duration) Option { return func(m *Manager) { m.interval = d } }

// WithPlayer sets the cue played on every accepted blessing.
func WithPlayer(p cue.Player) Option { return func(m *Manager) { m.player = p } }

// WithJournal records accepted blessings in j.
func WithJournal(j Journal) Option { return func(m *Manager) { m.journal = j } }

// WithBus publishes manager events on b.
func WithBus(b *bus.Bus) Option { return func(m *Manager) { m.bus = b } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(m *Manager) { m.logger = l } }

// Manager is the cooldown state machine. All state is guarded by mu, so a
// bless and a tick never interleave.
type Manager struct {
	mu       sync.Mutex
	prefs    *prefs.Prefs
	machine  *status.Machine
	clock    Clock
	interval time.Duration
	player   cue.Player
	journal  Journal
	bus      *bus.Bus
	logger   *zap.Logger

	blessed    bool
	timeLeft   int
	endTime    time.Time
	blessingID string
	language   prefs.Language
	theme      prefs.Theme

	loop   *tickLoop
	closed bool
}

// tickLoop is one running countdown goroutine.
type tickLoop struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an Idle manager over p. Call Restore to load persisted state.
func New(p *prefs.Prefs, opts ...Option) *Manager {
	m := &Manager{
		prefs:    p,
		clock:    SystemClock,
		interval: TickInterval,
		player:   cue.Nop,
		logger:   zap.NewNop(),
		language: prefs.DefaultLanguage,
		theme:    prefs.DefaultTheme,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.machine = status.NewMachine(m.bus)
	return m
}

// Peek computes the state persisted in p as of now without changing
// anything. A persisted end time more than one whole second ahead means a
// running cooldown; anything else is Idle.
func Peek(p *prefs.Prefs, now time.Time) State {
	s := State{
		Phase:    status.Idle,
		Language: p.Language(),
		Theme:    p.Theme(),
	}
	end, ok := p.EndTime()
	if !ok {
		return s
	}
	remaining := int(end.Sub(now) / time.Second)
	if remaining <= 0 {
		return s
	}
	s.Phase = status.CoolingDown
	s.Blessed = p.Blessed()
	s.TimeLeft = remaining
	s.EndTime = end
	return s
}

// Restore loads state from storage and resumes a running cooldown. When the
// persisted cooldown is over, leftover cooldown keys are purged.
func (m *Manager) Restore() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Peek(m.prefs, m.clock.Now())
	m.language = s.Language
	m.theme = s.Theme

	if s.Waiting() {
		m.blessed = s.Blessed
		m.timeLeft = s.TimeLeft
		m.endTime = s.EndTime
		m.blessingID = m.lookupBlessing(s.EndTime)
		m.machine.Reset(status.CoolingDown)
		m.startLoopLocked()
		m.logger.Info("cooldown restored",
			zap.Int("time_left", m.timeLeft),
			zap.Bool("blessed", m.blessed))
		return m.snapshotLocked()
	}

	m.stopLoopLocked()
	m.resetLocked()
	m.machine.Reset(status.Idle)
	_, hasEnd := m.prefs.EndTime()
	if hasEnd || m.prefs.Waiting() || m.prefs.Blessed() {
		if err := m.prefs.ClearCooldown(); err != nil {
			m.logger.Warn("failed to purge stale cooldown", zap.Error(err))
		} else {
			m.logger.Info("stale cooldown purged")
		}
	}
	return m.snapshotLocked()
}

func (m *Manager) lookupBlessing(end time.Time) string {
	if m.journal == nil {
		return ""
	}
	latest, err := m.journal.ListBlessings(1)
	if err != nil {
		m.logger.Warn("failed to read blessing journal", zap.Error(err))
		return ""
	}
	if len(latest) == 0 || latest[0].EndsAt != end.UnixMilli() {
		return ""
	}
	return latest[0].ID
}

// Bless starts a cooldown. It returns false, and changes nothing, while a
// cooldown is already running. Storage errors are returned but the
// in-memory transition stands.
func (m *Manager) Bless() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.machine.Current() == status.CoolingDown {
		return false, nil
	}
	if err := m.machine.Transition(status.CoolingDown); err != nil {
		return false, err
	}

	now := m.clock.Now()
	m.blessed = true
	m.timeLeft = WaitSeconds
	m.endTime = now.Add(Duration)
	m.blessingID = uuid.NewString()

	var errs []error
	if err := m.prefs.SetEndTime(m.endTime); err != nil {
		errs = append(errs, fmt.Errorf("persist end time: %w", err))
	}
	if err := m.prefs.SetBlessed(true); err != nil {
		errs = append(errs, fmt.Errorf("persist blessed flag: %w", err))
	}
	if err := m.prefs.SetWaiting(true); err != nil {
		errs = append(errs, fmt.Errorf("persist waiting flag: %w", err))
	}
	if m.journal != nil {
		err := m.journal.RecordBlessing(&store.Blessing{
			ID:        m.blessingID,
			BlessedAt: now.UnixMilli(),
			EndsAt:    m.endTime.UnixMilli(),
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)
	if err != nil {
		m.logger.Error("blessing not fully persisted", zap.Error(err))
	}

	m.startLoopLocked()
	cue.Fire(m.player, m.bus, m.logger)

	snap := m.snapshotLocked()
	m.bus.Emit(bus.KindBlessed, snap)
	m.logger.Info("blessed",
		zap.String("blessing_id", m.blessingID),
		zap.Time("ends_at", m.endTime))
	return true, err
}

// Tick advances the countdown by one second. It does nothing unless a
// cooldown is running. The final tick clears the cooldown in one step.
func (m *Manager) Tick() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickLocked()
	return m.snapshotLocked()
}

func (m *Manager) tickLocked() {
	if m.machine.Current() != status.CoolingDown || m.timeLeft <= 0 {
		return
	}
	if m.timeLeft <= 1 {
		m.expireLocked()
		return
	}
	m.timeLeft--
	m.bus.Emit(bus.KindTick, m.timeLeft)
}

func (m *Manager) expireLocked() {
	m.stopLoopLocked()
	if err := m.machine.Transition(status.Idle); err != nil {
		m.logger.Error("expire", zap.Error(err))
	}
	id := m.blessingID
	m.resetLocked()
	if err := m.prefs.ClearCooldown(); err != nil {
		m.logger.Warn("failed to clear persisted cooldown", zap.Error(err))
	}
	m.bus.Emit(bus.KindExpired, m.snapshotLocked())
	m.logger.Info("cooldown expired", zap.String("blessing_id", id))
}

func (m *Manager) resetLocked() {
	m.blessed = false
	m.timeLeft = 0
	m.endTime = time.Time{}
	m.blessingID = ""
}

// State returns a snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() State {
	return State{
		Phase:      m.machine.Current(),
		Blessed:    m.blessed,
		TimeLeft:   m.timeLeft,
		EndTime:    m.endTime,
		Language:   m.language,
		Theme:      m.theme,
		BlessingID: m.blessingID,
	}
}

// SetLanguage switches and persists the UI language.
func (m *Manager) SetLanguage(l prefs.Language) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.language = l
	return m.persistPrefLocked("language", m.prefs.SetLanguage(l))
}

// ToggleLanguage flips between tr and en.
func (m *Manager) ToggleLanguage() (prefs.Language, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.language = m.language.Toggle()
	return m.language, m.persistPrefLocked("language", m.prefs.SetLanguage(m.language))
}

// SetTheme switches and persists the color theme.
func (m *Manager) SetTheme(t prefs.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = t
	return m.persistPrefLocked("theme", m.prefs.SetTheme(t))
}

// ToggleTheme flips between light and dark.
func (m *Manager) ToggleTheme() (prefs.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = m.theme.Toggle()
	return m.theme, m.persistPrefLocked("theme", m.prefs.SetTheme(m.theme))
}

func (m *Manager) persistPrefLocked(name string, err error) error {
	m.bus.Emit(bus.KindPrefsChanged, m.snapshotLocked())
	if err != nil {
		m.logger.Warn("failed to persist preference", zap.String("pref", name), zap.Error(err))
		return fmt.Errorf("persist %s: %w", name, err)
	}
	return nil
}

// Close stops the countdown loop and waits for it to exit. The manager
// ignores blessings afterwards.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	loop := m.stopLoopLocked()
	m.mu.Unlock()

	if loop != nil {
		<-loop.done
	}
	return nil
}

// startLoopLocked runs the countdown while the manager is CoolingDown.
func (m *Manager) startLoopLocked() {
	if m.loop != nil || m.closed || m.timeLeft <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	loop := &tickLoop{cancel: cancel, done: make(chan struct{})}
	m.loop = loop
	go m.run(ctx, loop)
}

// stopLoopLocked cancels the running loop, if any, without waiting for it.
func (m *Manager) stopLoopLocked() *tickLoop {
	loop := m.loop
	m.loop = nil
	if loop != nil {
		loop.cancel()
	}
	return loop
}

func (m *Manager) run(ctx context.Context, loop *tickLoop) {
	defer close(loop.done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			// A tick from a cancelled loop must not touch a newer cooldown.
			if m.loop == loop {
				m.tickLocked()
			}
			m.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}
