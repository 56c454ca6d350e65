package hub75

import (
	"context"
	"errors"
	"fmt"
)

// ErrTimerRunning means a new enable pulse was scheduled while the previous
// one had not finished. It is a logic fault and is raised as a panic.
var ErrTimerRunning = errors.New("hub75: enable pulse timer still running")

// PulseTimer is a timer in one-pulse mode driving the output enable line.
// The line is low (panel lit) from the compare match until the reload at
// Period ticks, after which the timer stops and reports completion.
type PulseTimer interface {
	Running() bool
	Period() uint16
	SetCompare(v uint16)
	StartOnePulse()
}

// Pulsed shows one (row, plane) line per Advance and leaves the enable pulse
// to its timer. The timer's completion event must call Advance again.
type Pulsed struct {
	frame *Frame
	lines Lines
	timer PulseTimer
	count int
	buf   [ColumnBytes]byte
}

func NewPulsed(f *Frame, l Lines, t PulseTimer) (*Pulsed, error) {
	if f == nil {
		return nil, fmt.Errorf("nil frame")
	}
	if l.Port == nil || l.Rows == nil || l.Latch == nil {
		return nil, fmt.Errorf("incomplete panel lines")
	}
	if t == nil {
		return nil, fmt.Errorf("nil pulse timer")
	}
	if t.Period() <= 1<<(Planes-1) {
		return nil, fmt.Errorf("timer period %d too short for %d planes", t.Period(), Planes)
	}
	return &Pulsed{
		frame: f,
		lines: l,
		timer: t,
	}, nil
}

// Advance shifts out the next line, latches it and starts its enable pulse.
func (p *Pulsed) Advance() {
	row := (p.count / Planes) % Rows
	plane := p.count % Planes
	p.count = (p.count + 1) % Steps

	p.frame.Line(row, plane, &p.buf)
	p.lines.shift(&p.buf)

	if p.timer.Running() {
		panic(ErrTimerRunning)
	}
	// Output is dark between pulses, so the address may change now.
	if plane == 0 {
		p.lines.Rows.SelectRow(uint8(row))
	}
	p.lines.latch()

	p.timer.SetCompare(p.timer.Period() - 1<<plane)
	p.timer.StartOnePulse()
}

// Run starts the first pulse and advances once per completion event on done
// until ctx is done.
func (p *Pulsed) Run(ctx context.Context, done <-chan struct{}) error {
	p.Advance()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			p.Advance()
		}
	}
}
