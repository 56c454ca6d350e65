package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-c3leds/internal/brightness"
	"github.com/coreman2200/funtimes-c3leds/internal/comet"
	"github.com/coreman2200/funtimes-c3leds/internal/palette"
	"github.com/coreman2200/funtimes-c3leds/internal/pixel"
	"github.com/coreman2200/funtimes-c3leds/internal/strip"
)

type TailOptions struct {
	Tick time.Duration
	// MinGap and MaxGap bound the ticks between particles before a host is
	// heard from.
	MinGap, MaxGap int
	Seed           uint64
}

// Tail animates comets on a strip. Until the first byte arrives it launches
// random palette colours by itself; that byte only switches it to host
// mode, after which every byte selects a palette colour.
type Tail struct {
	elems   *comet.Elements
	strip   strip.Driver
	palette palette.Palette
	opts    TailOptions
	log     zerolog.Logger

	rand *rand.Rand
	gap  int
	host bool
	buf  []pixel.RGB8
}

func NewTail(e *comet.Elements, s strip.Driver, p palette.Palette, o TailOptions, log zerolog.Logger) (*Tail, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	if o.MinGap < 1 || o.MaxGap <= o.MinGap {
		return nil, fmt.Errorf("gap range [%d, %d) is empty", o.MinGap, o.MaxGap)
	}
	if o.Tick <= 0 {
		return nil, fmt.Errorf("tick must be positive")
	}
	t := &Tail{
		elems:   e,
		strip:   s,
		palette: p,
		opts:    o,
		log:     log,
		rand:    rand.New(rand.NewPCG(o.Seed, o.Seed)),
		buf:     make([]pixel.RGB8, e.Length()),
	}
	t.gap = t.nextGap()
	return t, nil
}

func (t *Tail) nextGap() int {
	return t.opts.MinGap + t.rand.IntN(t.opts.MaxGap-t.opts.MinGap)
}

// HostMode reports whether a host has been heard from.
func (t *Tail) HostMode() bool {
	return t.host
}

// Tick consumes the bytes poll has ready, advances the comets and writes
// the strip.
func (t *Tail) Tick(poll func() (byte, bool)) error {
	if !t.host {
		if _, ok := poll(); ok {
			t.host = true
			t.log.Info().Msg("host active")
		} else {
			t.gap--
			if t.gap == 0 {
				t.gap = t.nextGap()
				t.add(t.palette.Pick(t.rand))
			}
		}
	}
	if t.host {
		for b, ok := poll(); ok; b, ok = poll() {
			if c, ok := t.palette.At(int(b)); ok {
				t.add(c)
			}
		}
	}

	t.elems.Step()
	n := t.elems.Colors(t.buf)
	for i, c := range t.buf[:n] {
		t.buf[i] = brightness.GammaRGB(c)
	}
	return t.strip.Write(t.buf[:n])
}

func (t *Tail) add(c pixel.RGB8) {
	if err := t.elems.Add(c); err != nil {
		t.log.Debug().Err(err).Msg("particle dropped")
	}
}

// Run ticks until ctx is done and turns the strip off.
func (t *Tail) Run(ctx context.Context, poll func() (byte, bool)) error {
	ticker := time.NewTicker(t.opts.Tick)
	defer ticker.Stop()
	defer func() {
		if err := t.strip.Halt(); err != nil {
			t.log.Warn().Err(err).Msg("strip halt failed")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := t.Tick(poll); err != nil {
				return fmt.Errorf("write strip: %w", err)
			}
		}
	}
}
