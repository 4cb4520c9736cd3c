package session

import (
	"sync"
	"time"
)

const DefaultLoadingTimeout = 8 * time.Second

// Watchdog raises a flag when the controller has been loading in the same
// state for longer than a threshold. Feed it every snapshot; the timer is
// stopped as soon as loading ends, the state changes or Stop is called.
type Watchdog struct {
	threshold time.Duration
	onFire    func()

	mu      sync.Mutex
	timer   *time.Timer
	armedIn State
	seq     uint64
	fired   bool
	stopped bool
}

// NewWatchdog returns a watchdog that calls onFire (if non-nil) from the
// timer goroutine when the threshold passes.
func NewWatchdog(threshold time.Duration, onFire func()) *Watchdog {
	if threshold <= 0 {
		threshold = DefaultLoadingTimeout
	}
	return &Watchdog{threshold: threshold, onFire: onFire}
}

// Observe is meant to be passed to Controller.Subscribe.
func (w *Watchdog) Observe(s Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if !s.Loading {
		w.disarmLocked()
		w.fired = false
		return
	}
	if w.timer != nil && w.armedIn == s.State {
		return
	}

	w.disarmLocked()
	w.fired = false
	w.armedIn = s.State
	w.seq++
	seq := w.seq
	w.timer = time.AfterFunc(w.threshold, func() { w.fire(seq) })
}

func (w *Watchdog) fire(seq uint64) {
	w.mu.Lock()
	if seq != w.seq || w.timer == nil || w.stopped {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.fired = true
	fn := w.onFire
	w.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (w *Watchdog) disarmLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Fired reports whether the recovery affordance should be shown.
func (w *Watchdog) Fired() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fired
}

// Armed reports whether a timer is currently pending.
func (w *Watchdog) Armed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timer != nil
}

// Stop cancels any pending timer for good.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	w.disarmLocked()
}
