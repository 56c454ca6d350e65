//go:build linux

package hub75

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
)

const consumer = "c3display"

// LinePort sets all port lines with one request per byte.
type LinePort struct {
	lines *gpiocdev.Lines
	vals  []int
}

func (p *LinePort) WritePort(b byte) {
	for i := range p.vals {
		p.vals[i] = int(b>>i) & 1
	}
	_ = p.lines.SetValues(p.vals)
}

type LineRows struct {
	lines *gpiocdev.Lines
	vals  []int
}

func (r *LineRows) SelectRow(row uint8) {
	for i := range r.vals {
		r.vals[i] = int(row>>i) & 1
	}
	_ = r.lines.SetValues(r.vals)
}

type LineOutput struct {
	line *gpiocdev.Line
}

func (o LineOutput) Out(l gpio.Level) error {
	v := 0
	if l {
		v = 1
	}
	return o.line.SetValue(v)
}

// LineOffsets places the connector on line offsets of one gpiochip.
type LineOffsets struct {
	Chip    string
	Port    [7]int
	Address [4]int
	Latch   int
	OE      int
}

// OpenLines requests all connector lines from the GPIO character device.
// The returned func releases them.
func OpenLines(o LineOffsets) (Lines, func() error, error) {
	var closers []interface{ Close() error }
	release := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c.Close())
		}
		return errors.Join(errs...)
	}

	port, err := gpiocdev.RequestLines(o.Chip, o.Port[:], gpiocdev.AsOutput(), gpiocdev.WithConsumer(consumer))
	if err != nil {
		return Lines{}, nil, fmt.Errorf("request port lines: %w", err)
	}
	closers = append(closers, port)

	rows, err := gpiocdev.RequestLines(o.Chip, o.Address[:], gpiocdev.AsOutput(), gpiocdev.WithConsumer(consumer))
	if err != nil {
		_ = release()
		return Lines{}, nil, fmt.Errorf("request address lines: %w", err)
	}
	closers = append(closers, rows)

	lat, err := gpiocdev.RequestLine(o.Chip, o.Latch, gpiocdev.AsOutput(0), gpiocdev.WithConsumer(consumer))
	if err != nil {
		_ = release()
		return Lines{}, nil, fmt.Errorf("request latch line: %w", err)
	}
	closers = append(closers, lat)

	// Enable is active low; start dark.
	oe, err := gpiocdev.RequestLine(o.Chip, o.OE, gpiocdev.AsOutput(1), gpiocdev.WithConsumer(consumer))
	if err != nil {
		_ = release()
		return Lines{}, nil, fmt.Errorf("request enable line: %w", err)
	}
	closers = append(closers, oe)

	return Lines{
		Port:  &LinePort{lines: port, vals: make([]int, len(o.Port))},
		Rows:  &LineRows{lines: rows, vals: make([]int, len(o.Address))},
		Latch: LineOutput{line: lat},
		OE:    LineOutput{line: oe},
	}, release, nil
}
