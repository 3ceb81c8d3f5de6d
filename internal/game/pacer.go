package game

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Pacer schedules AI turns after a visible think delay. The delay is UX
// pacing only: the engine stays correct if Advance is called immediately,
// and at most one advance is ever outstanding. The clock is injectable so
// tests can drive it with quartz.NewMock.
type Pacer struct {
	clock quartz.Clock
	delay time.Duration

	mu    sync.Mutex
	timer *quartz.Timer
}

// NewPacer creates a pacer on the given clock
func NewPacer(clock quartz.Clock, delay time.Duration) *Pacer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Pacer{clock: clock, delay: delay}
}

// Schedule arranges for fn to run after the think delay, replacing any
// advance still outstanding.
func (p *Pacer) Schedule(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = p.clock.AfterFunc(p.delay, fn)
}

// Stop cancels any outstanding advance
func (p *Pacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
