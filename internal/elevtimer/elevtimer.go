package elevtimer

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Timer is a restartable one-shot countdown. The door dwell and the
// emergency recovery interval share one Timer, as the two are never
// measured at the same time.
type Timer struct {
	clock     clock.Clock
	startTime time.Time
	started   bool
}

func NewTimer(clk clock.Clock) *Timer {
	if clk == nil {
		clk = clock.New()
	}
	return &Timer{clock: clk}
}

// Start records the current time. Calling it again restarts the countdown.
func (t *Timer) Start() {
	t.startTime = t.clock.Now()
	t.started = true
}

// Expired reports whether at least duration has passed since the most
// recent Start. It is true before the first Start.
func (t *Timer) Expired(duration time.Duration) bool {
	if !t.started {
		return true
	}
	return t.clock.Now().Sub(t.startTime) >= duration
}

// Elapsed is zero before the first Start.
func (t *Timer) Elapsed() time.Duration {
	if !t.started {
		return 0
	}
	return t.clock.Now().Sub(t.startTime)
}
