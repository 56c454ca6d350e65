package hub75

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// PinPort writes the port bit by bit to individual pins; bit i goes to pin i.
// Nil entries are skipped.
type PinPort [8]gpio.PinOut

func (p *PinPort) WritePort(b byte) {
	for i, pin := range p {
		if pin != nil {
			_ = pin.Out(gpio.Level(b&(1<<i) != 0))
		}
	}
}

// PinRows drives the address lines A, B, C, D.
type PinRows [4]gpio.PinOut

func (r *PinRows) SelectRow(row uint8) {
	for i, pin := range r {
		_ = pin.Out(gpio.Level(row&(1<<i) != 0))
	}
}

// PinNames names the connector pins as known to gpioreg, e.g. "GPIO5".
type PinNames struct {
	// Port holds R1 G1 B1 R2 G2 B2 CLK, in port bit order.
	Port    [7]string
	Address [4]string
	Latch   string
	OE      string
}

// OpenPins looks up every pin by name. host.Init must have run.
func OpenPins(n PinNames) (Lines, error) {
	var port PinPort
	for i, name := range n.Port {
		p, err := byName(name)
		if err != nil {
			return Lines{}, err
		}
		port[i] = p
	}
	var rows PinRows
	for i, name := range n.Address {
		p, err := byName(name)
		if err != nil {
			return Lines{}, err
		}
		rows[i] = p
	}
	lat, err := byName(n.Latch)
	if err != nil {
		return Lines{}, err
	}
	oe, err := byName(n.OE)
	if err != nil {
		return Lines{}, err
	}
	return Lines{Port: &port, Rows: &rows, Latch: lat, OE: oe}, nil
}

func byName(name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("pin %q not found", name)
	}
	return p, nil
}
