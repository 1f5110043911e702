package model

import (
	"sync"

	"github.com/matheus3301/quickblessing/internal/cooldown"
	"github.com/matheus3301/quickblessing/internal/prefs"
)

// Counter reports how many blessings the profile has received.
type Counter interface {
	CountBlessings() (int, error)
}

// ViewModel caches the manager state the views render and signals when it
// changed.
type ViewModel struct {
	mu sync.RWMutex

	mgr       *cooldown.Manager
	counter   Counter
	state     cooldown.State
	blessings int

	refreshCh chan struct{}
}

// NewViewModel creates a view model over mgr. counter may be nil.
func NewViewModel(mgr *cooldown.Manager, counter Counter) *ViewModel {
	return &ViewModel{
		mgr:       mgr,
		counter:   counter,
		refreshCh: make(chan struct{}, 1),
	}
}

// RefreshCh returns the channel that signals UI refresh.
func (vm *ViewModel) RefreshCh() <-chan struct{} {
	return vm.refreshCh
}

func (vm *ViewModel) signalRefresh() {
	select {
	case vm.refreshCh <- struct{}{}:
	default:
	}
}

// Refresh re-reads the manager state and the blessing count.
func (vm *ViewModel) Refresh() error {
	state := vm.mgr.State()
	var (
		count int
		err   error
	)
	if vm.counter != nil {
		count, err = vm.counter.CountBlessings()
	}

	vm.mu.Lock()
	vm.state = state
	if err == nil {
		vm.blessings = count
	}
	vm.mu.Unlock()
	vm.signalRefresh()
	return err
}

// Bless asks the manager for a blessing. accepted is false while a cooldown
// is running.
func (vm *ViewModel) Bless() (accepted bool, err error) {
	accepted, err = vm.mgr.Bless()
	if refreshErr := vm.Refresh(); err == nil {
		err = refreshErr
	}
	return accepted, err
}

// ToggleTheme flips and persists the theme.
func (vm *ViewModel) ToggleTheme() error {
	_, err := vm.mgr.ToggleTheme()
	_ = vm.Refresh()
	return err
}

// SetTheme selects and persists the theme.
func (vm *ViewModel) SetTheme(t prefs.Theme) error {
	err := vm.mgr.SetTheme(t)
	_ = vm.Refresh()
	return err
}

// ToggleLanguage flips and persists the language.
func (vm *ViewModel) ToggleLanguage() error {
	_, err := vm.mgr.ToggleLanguage()
	_ = vm.Refresh()
	return err
}

// SetLanguage selects and persists the language.
func (vm *ViewModel) SetLanguage(l prefs.Language) error {
	err := vm.mgr.SetLanguage(l)
	_ = vm.Refresh()
	return err
}

// State returns the cached manager state.
func (vm *ViewModel) State() cooldown.State {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.state
}

// Blessings returns the cached blessing count.
func (vm *ViewModel) Blessings() int {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.blessings
}
