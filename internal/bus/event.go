package bus

import "time"

// Event kinds published by the widget. Subscribers filter on prefixes such as
// "cooldown." or "prefs.".
const (
	KindBlessed       = "cooldown.blessed"
	KindTick          = "cooldown.tick"
	KindExpired       = "cooldown.expired"
	KindStatusChanged = "cooldown.status_changed"
	KindPrefsChanged  = "prefs.changed"
	KindCueFailed     = "cue.failed"
)

// Event is a single notification carried by the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
