// Package comet keeps the particles of a comet trail animation on an LED
// strip and renders them as a stream of fading colours.
package comet

import (
	"errors"
	"fmt"
	"iter"

	"github.com/coreman2200/funtimes-c3leds/internal/brightness"
	"github.com/coreman2200/funtimes-c3leds/internal/pixel"
)

// Capacity is the maximum number of particles in flight.
const Capacity = 128

// ErrFull is returned by Add when Capacity particles are queued. Callers
// usually drop the particle.
var ErrFull = errors.New("comet: particle queue full")

type particle struct {
	color    pixel.RGB8
	position int
}

// Elements is a FIFO of particles moving along a strip of length LEDs, each
// followed by a trail fading over trail LEDs. The oldest particle is always
// the one furthest along. Not safe for concurrent use.
type Elements struct {
	buf    [Capacity]particle
	ring   Ring
	length int
	trail  int
}

func New(length, trail int) (*Elements, error) {
	if length < 1 {
		return nil, fmt.Errorf("strip length must be positive, got %d", length)
	}
	if trail < 1 || trail > 255 {
		return nil, fmt.Errorf("trail length must be in [1, 255], got %d", trail)
	}
	e := &Elements{length: length, trail: trail}
	e.ring.Init(Capacity)
	return e, nil
}

func (e *Elements) Length() int { return e.length }

func (e *Elements) Trail() int { return e.trail }

// Len returns the number of particles in flight.
func (e *Elements) Len() int {
	return e.ring.Len()
}

// Add launches a particle at position 0. It does nothing when the newest
// particle has not moved yet, so several adds within one tick collapse into
// one.
func (e *Elements) Add(c pixel.RGB8) error {
	if !e.ring.Empty() && e.at(e.ring.Len()-1).position == 0 {
		return nil
	}
	if e.ring.Full() {
		return ErrFull
	}
	e.buf[e.ring.NextWrite()] = particle{color: c}
	e.ring.Write()
	return nil
}

// Step moves every particle one LED further and culls.
func (e *Elements) Step() {
	for i := 0; i < e.ring.Len(); i++ {
		e.at(i).position++
	}
	e.Cull()
}

// Cull drops particles whose trail has left the strip entirely, that is
// whose position exceeds length+trail.
func (e *Elements) Cull() {
	for !e.ring.Empty() && e.buf[e.ring.NextRead()].position > e.length+e.trail {
		e.ring.Read()
	}
}

func (e *Elements) at(i int) *particle {
	return &e.buf[e.ring.Index(i)]
}

// Iter returns a fresh iterator over the strip colours.
func (e *Elements) Iter() *Iter {
	return &Iter{
		e:     e,
		next:  e.ring.Len() - 1,
		step:  255 / e.trail,
		trail: e.trail,
	}
}

// All yields the colour of every LED of the strip, from position 0 on.
func (e *Elements) All() iter.Seq[pixel.RGB8] {
	return func(yield func(pixel.RGB8) bool) {
		it := e.Iter()
		for {
			c, ok := it.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

// Colors writes the strip colours into dst and returns how many were
// written, at most len(dst).
func (e *Elements) Colors(dst []pixel.RGB8) int {
	n := 0
	for c := range e.All() {
		if n == len(dst) {
			break
		}
		dst[n] = c
		n++
	}
	return n
}

// Iter walks the strip from position 0 and the particles from newest to
// oldest at the same time. It must not outlive a Step or Add on its
// Elements.
type Iter struct {
	e     *Elements
	next  int // particle ahead of pos, counted from the oldest; -1 when none
	pos   int
	step  int
	trail int
}

// Next returns the colour at the next LED, or false after the last one.
func (it *Iter) Next() (pixel.RGB8, bool) {
	if it.pos >= it.e.length {
		return pixel.Black, false
	}
	pos := it.pos
	it.pos++

	for it.next >= 0 && it.e.at(it.next).position < pos {
		it.next--
	}
	if it.next < 0 {
		return pixel.Black, true
	}

	p := it.e.at(it.next)
	distance := p.position - pos
	m := 0
	if distance < it.trail {
		m = (it.trail - distance) * it.step
	}
	return brightness.Scale(p.color, uint16(m)), true
}
