package hub75

import (
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// SoftTimer emulates a one-pulse-mode timer with goroutines and sleeps,
// driving the enable line itself.
type SoftTimer struct {
	oe      Output
	period  uint16
	tick    time.Duration
	compare atomic.Uint32
	running atomic.Bool
	done    chan struct{}
}

func NewSoftTimer(oe Output, period uint16, tick time.Duration) *SoftTimer {
	if tick <= 0 {
		tick = DefaultUnit
	}
	_ = oe.Out(gpio.High)
	return &SoftTimer{
		oe:     oe,
		period: period,
		tick:   tick,
		done:   make(chan struct{}, 1),
	}
}

func (t *SoftTimer) Running() bool {
	return t.running.Load()
}

func (t *SoftTimer) Period() uint16 {
	return t.period
}

func (t *SoftTimer) SetCompare(v uint16) {
	t.compare.Store(uint32(v))
}

// StartOnePulse arms the timer. Done receives one event when it stops.
func (t *SoftTimer) StartOnePulse() {
	t.running.Store(true)
	c := t.compare.Load()
	go func() {
		time.Sleep(time.Duration(c) * t.tick)
		_ = t.oe.Out(gpio.Low)
		time.Sleep(time.Duration(uint32(t.period)-c) * t.tick)
		_ = t.oe.Out(gpio.High)
		t.running.Store(false)
		t.done <- struct{}{}
	}()
}

func (t *SoftTimer) Done() <-chan struct{} {
	return t.done
}
