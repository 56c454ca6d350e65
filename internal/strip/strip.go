// Package strip writes colour frames to addressable LED strips.
package strip

import (
	"fmt"
	"strings"

	"github.com/coreman2200/funtimes-c3leds/internal/pixel"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/apa102"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
)

// Driver shows one frame of colours, from the first LED on. LEDs beyond
// len(colors) are turned off.
type Driver interface {
	Write(colors []pixel.RGB8) error
	Halt() error
}

type Kind string

const (
	WS2812    Kind = "ws2812"
	SK6812W   Kind = "sk6812w"
	APA102    Kind = "apa102"
	Console   Kind = "console"
	Simulated Kind = "sim"
)

// DefaultFreq is the NRZ bit rate for WS2812 class LEDs.
const DefaultFreq = 2500 * physic.KiloHertz

type Options struct {
	Kind      Kind
	NumPixels int
	// Port names the SPI port for spireg; empty picks the first one.
	Port string
	Freq physic.Frequency
	// Intensity is the APA102 global brightness.
	Intensity uint8
}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case WS2812, SK6812W, APA102, Console, Simulated:
		return k, nil
	}
	return "", fmt.Errorf("unknown strip kind %q", s)
}

// Open creates the driver for o. SPI strips open their port through spireg,
// so host.Init must have run; the returned func closes it.
func Open(o Options) (Driver, func() error, error) {
	nop := func() error { return nil }
	switch o.Kind {
	case Console:
		return NewDrawer(screen.New(o.NumPixels), o.NumPixels), nop, nil
	case Simulated:
		return NewSim(o.NumPixels), nop, nil
	}

	p, err := spireg.Open(o.Port)
	if err != nil {
		return nil, nil, fmt.Errorf("open spi port %q: %w", o.Port, err)
	}
	d, err := New(p, o)
	if err != nil {
		_ = p.Close()
		return nil, nil, err
	}
	return d, p.Close, nil
}

// New creates an SPI backed driver on p.
func New(p spi.Port, o Options) (Driver, error) {
	if o.NumPixels <= 0 {
		return nil, fmt.Errorf("strip needs at least one pixel, got %d", o.NumPixels)
	}
	if o.Freq == 0 {
		o.Freq = DefaultFreq
	}

	switch o.Kind {
	case WS2812, SK6812W:
		channels := 3
		if o.Kind == SK6812W {
			channels = 4
		}
		d, err := nrzled.NewSPI(p, &nrzled.Opts{
			NumPixels: o.NumPixels,
			Channels:  channels,
			Freq:      o.Freq,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.Kind, err)
		}
		return NewRaw(d, o.NumPixels, channels), nil

	case APA102:
		opts := apa102.DefaultOpts
		opts.NumPixels = o.NumPixels
		if o.Intensity != 0 {
			opts.Intensity = o.Intensity
		}
		d, err := apa102.New(p, &opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.Kind, err)
		}
		return NewDrawer(d, o.NumPixels), nil
	}
	return nil, fmt.Errorf("strip kind %q is not an spi strip", o.Kind)
}
