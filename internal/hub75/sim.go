package hub75

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Sim models a 64×32 panel behind the connector, on virtual time. It counts
// how long every LED was lit, which makes the BCM weights observable.
//
// The shift chain is modelled so that the first column shifted after a latch
// ends up in column 0.
type Sim struct {
	now time.Duration

	clk     bool
	shifted [Width]uint8
	latched [Width]uint8
	row     uint8

	latchHigh bool
	oeLow     bool
	litSince  time.Duration
	litRow    uint8

	lit [Rows][Width][2][3]time.Duration

	Shifts     int
	Latches    int
	RowSelects int
	Pulses     int

	timer *SimTimer
}

func NewSim() *Sim {
	return &Sim{}
}

// Lines returns connector lines wired to the simulated panel.
func (s *Sim) Lines() Lines {
	return Lines{
		Port:  s,
		Rows:  s,
		Latch: simLine(s.setLatch),
		OE:    simLine(s.setOE),
	}
}

// Timer returns a pulse timer driving the simulated enable line.
func (s *Sim) Timer(period uint16, tick time.Duration) *SimTimer {
	s.timer = &SimTimer{sim: s, period: period, tick: tick, done: make(chan struct{}, 1)}
	return s.timer
}

func (s *Sim) Now() time.Duration {
	return s.now
}

func (s *Sim) WritePort(b byte) {
	clk := b&ClockBit != 0
	if clk && !s.clk {
		copy(s.shifted[:], s.shifted[1:])
		s.shifted[Width-1] = b & (LowerMask | UpperMask)
		s.Shifts++
	}
	s.clk = clk
}

func (s *Sim) SelectRow(row uint8) {
	s.row = row & (Rows - 1)
	s.RowSelects++
}

func (s *Sim) Delay(d time.Duration) {
	s.now += d
}

func (s *Sim) setLatch(l gpio.Level) {
	if l && !s.latchHigh {
		s.latched = s.shifted
		s.Latches++
	}
	s.latchHigh = bool(l)
}

func (s *Sim) setOE(l gpio.Level) {
	switch {
	case !l && !s.oeLow:
		s.oeLow = true
		s.litSince = s.now
		s.litRow = s.row
	case l && s.oeLow:
		s.oeLow = false
		s.integrate(s.litRow, s.now-s.litSince)
	}
}

func (s *Sim) integrate(row uint8, d time.Duration) {
	s.Pulses++
	for x, bits := range s.latched {
		for half := 0; half < 2; half++ {
			v := bits >> (3 * half)
			for ch := 0; ch < 3; ch++ {
				if v&(1<<ch) != 0 {
					s.lit[row][x][half][ch] += d
				}
			}
		}
	}
}

// Lit returns the accumulated on-time of the red, green and blue LED of the
// pixel at (x, y), in the frame's coordinates.
func (s *Sim) Lit(x, y int) [3]time.Duration {
	half := int(halfShift(y) / 3)
	return s.lit[rowOf(y)][x][half]
}

// Reset clears the accumulated on-times and counters.
func (s *Sim) Reset() {
	s.lit = [Rows][Width][2][3]time.Duration{}
	s.Shifts, s.Latches, s.RowSelects, s.Pulses = 0, 0, 0, 0
}

type simLine func(gpio.Level)

func (f simLine) Out(l gpio.Level) error {
	f(l)
	return nil
}

// SimTimer completes every pulse synchronously: the enable line is low for
// Period-compare ticks of virtual time before StartOnePulse returns.
type SimTimer struct {
	sim     *Sim
	period  uint16
	tick    time.Duration
	compare uint16
	done    chan struct{}
}

func (t *SimTimer) Running() bool { return false }

func (t *SimTimer) Period() uint16 { return t.period }

func (t *SimTimer) SetCompare(v uint16) { t.compare = v }

func (t *SimTimer) StartOnePulse() {
	s := t.sim
	s.Delay(time.Duration(t.compare) * t.tick)
	s.setOE(gpio.Low)
	s.Delay(time.Duration(t.period-t.compare) * t.tick)
	s.setOE(gpio.High)
	select {
	case t.done <- struct{}{}:
	default:
	}
}

func (t *SimTimer) Done() <-chan struct{} { return t.done }
