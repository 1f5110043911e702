package status

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/quickblessing/internal/bus"
)

// Phase is the cooldown phase of the widget.
type Phase string

const (
	Idle        Phase = "IDLE"
	CoolingDown Phase = "COOLING_DOWN"
)

// validTransitions defines allowed phase transitions. CoolingDown is only
// left through expiry.
var validTransitions = map[Phase][]Phase{
	Idle:        {CoolingDown},
	CoolingDown: {Idle},
}

// Machine tracks and enforces phase transitions.
type Machine struct {
	mu      sync.RWMutex
	current Phase
	bus     *bus.Bus
}

// NewMachine creates a machine starting in Idle.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Idle,
		bus:     b,
	}
}

// Current returns the current phase.
func (m *Machine) Current() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition moves to a new phase. Returns error if the transition is invalid.
func (m *Machine) Transition(to Phase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	allowed := validTransitions[m.current]
	if !slices.Contains(allowed, to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	m.bus.Publish(bus.Event{
		Kind:      bus.KindStatusChanged,
		Timestamp: time.Now(),
		Payload:   PhaseChange{From: from, To: to},
	})
	return nil
}

// Reset forces the machine into phase p without validation. Used when the
// phase is restored from storage at startup.
func (m *Machine) Reset(p Phase) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = p
}

// PhaseChange is the payload for status change events.
type PhaseChange struct {
	From Phase
	To   Phase
}
