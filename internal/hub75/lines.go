package hub75

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// PortWriter writes one byte to the 8-bit data port.
type PortWriter interface {
	WritePort(b byte)
}

// RowSelector drives the 4 row address lines.
type RowSelector interface {
	SelectRow(row uint8)
}

// Output is a single digital line. Any periph gpio.PinOut satisfies it.
// Errors are not checked by the drivers.
type Output interface {
	Out(l gpio.Level) error
}

// Clock provides the pulse and anti-ghosting delays.
type Clock interface {
	Delay(d time.Duration)
}

// Lines bundles the outputs of one panel connector. OE is unused by Pulsed,
// where the pulse timer owns the enable line.
type Lines struct {
	Port  PortWriter
	Rows  RowSelector
	Latch Output
	OE    Output
}

func (l *Lines) shift(buf *[ColumnBytes]byte) {
	for _, b := range buf {
		l.Port.WritePort(b)
	}
}

func (l *Lines) latch() {
	_ = l.Latch.Out(gpio.High)
	_ = l.Latch.Out(gpio.Low)
}

// BusyClock spins on the monotonic clock, like the delay loops of a
// microcontroller.
type BusyClock struct{}

func (BusyClock) Delay(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}

// SleepClock hands the delay to the scheduler. Pulses get much longer than
// requested on most hosts.
type SleepClock struct{}

func (SleepClock) Delay(d time.Duration) {
	time.Sleep(d)
}
