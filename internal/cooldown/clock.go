package cooldown

import "time"

// Clock abstracts wall-clock reads for testing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default Clock.
var SystemClock Clock = systemClock{}
