package hub75

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

const (
	DefaultUnit   = time.Microsecond
	DefaultRowGap = 100 * time.Microsecond
)

type BlockingOptions struct {
	// Unit is the enable time of the least significant shown plane.
	Unit time.Duration
	// RowGap is the dark time after each row, against ghosting.
	RowGap time.Duration
	// SkipPlanes drops the lowest planes to refresh faster. The remaining
	// planes keep their relative weights.
	SkipPlanes int
}

// Blocking refreshes the panel synchronously, timing every enable pulse with
// its Clock.
type Blocking struct {
	frame *Frame
	lines Lines
	clock Clock
	opts  BlockingOptions
	buf   [ColumnBytes]byte
}

func NewBlocking(f *Frame, l Lines, c Clock, o BlockingOptions) (*Blocking, error) {
	if f == nil {
		return nil, fmt.Errorf("nil frame")
	}
	if l.Port == nil || l.Rows == nil || l.Latch == nil || l.OE == nil {
		return nil, fmt.Errorf("incomplete panel lines")
	}
	if c == nil {
		return nil, fmt.Errorf("nil clock")
	}
	if o.SkipPlanes < 0 || o.SkipPlanes >= Planes {
		return nil, fmt.Errorf("skip planes must be in [0, %d), got %d", Planes, o.SkipPlanes)
	}
	if o.Unit <= 0 {
		o.Unit = DefaultUnit
	}
	if o.RowGap < 0 {
		o.RowGap = 0
	}

	_ = l.OE.Out(gpio.High)
	_ = l.Latch.Out(gpio.Low)

	return &Blocking{
		frame: f,
		lines: l,
		clock: c,
		opts:  o,
	}, nil
}

// Output shows every row once.
func (b *Blocking) Output() {
	for row := 0; row < Rows; row++ {
		b.lines.Rows.SelectRow(uint8(row))
		for plane := b.opts.SkipPlanes; plane < Planes; plane++ {
			b.frame.Line(row, plane, &b.buf)
			b.lines.shift(&b.buf)
			b.lines.latch()

			_ = b.lines.OE.Out(gpio.Low)
			b.clock.Delay(b.opts.Unit << (plane - b.opts.SkipPlanes))
			_ = b.lines.OE.Out(gpio.High)
		}
		b.clock.Delay(b.opts.RowGap)
	}
}

// Run refreshes until ctx is done.
func (b *Blocking) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			b.Output()
		}
	}
}
