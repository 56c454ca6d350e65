package strip

import (
	"sync"

	"github.com/coreman2200/funtimes-c3leds/internal/pixel"
)

// Sim keeps the last frame in memory.
type Sim struct {
	mu     sync.Mutex
	frame  []pixel.RGB8
	writes int
}

func NewSim(n int) *Sim {
	return &Sim{frame: make([]pixel.RGB8, n)}
}

func (s *Sim) Write(colors []pixel.RGB8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := copy(s.frame, colors)
	clear(s.frame[n:])
	s.writes++
	return nil
}

func (s *Sim) Halt() error {
	s.mu.Lock()
	clear(s.frame)
	s.mu.Unlock()
	return nil
}

// Frame returns a copy of the last frame.
func (s *Sim) Frame() []pixel.RGB8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pixel.RGB8(nil), s.frame...)
}

func (s *Sim) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
