package strip

import (
	"image"
	"io"

	"github.com/coreman2200/funtimes-c3leds/internal/pixel"
	"periph.io/x/conn/v3/display"
)

// Drawer renders frames through a periph display.Drawer as an n×1 image.
type Drawer struct {
	d   display.Drawer
	img *image.NRGBA
}

func NewDrawer(d display.Drawer, n int) *Drawer {
	return &Drawer{
		d:   d,
		img: image.NewNRGBA(image.Rect(0, 0, n, 1)),
	}
}

func (s *Drawer) Write(colors []pixel.RGB8) error {
	for x := 0; x < s.img.Rect.Dx(); x++ {
		c := pixel.Black
		if x < len(colors) {
			c = colors[x]
		}
		s.img.SetNRGBA(x, 0, c.NRGBA())
	}
	return s.d.Draw(s.d.Bounds(), s.img, image.Point{})
}

func (s *Drawer) Halt() error {
	return s.d.Halt()
}

// Raw sends frames as packed channel bytes, R G B and a dark W channel
// for 4 channel LEDs.
type Raw struct {
	w        io.Writer
	channels int
	buf      []byte
}

func NewRaw(w io.Writer, n, channels int) *Raw {
	return &Raw{
		w:        w,
		channels: channels,
		buf:      make([]byte, n*channels),
	}
}

func (s *Raw) Write(colors []pixel.RGB8) error {
	clear(s.buf)
	for i, c := range colors {
		off := i * s.channels
		if off+3 > len(s.buf) {
			break
		}
		s.buf[off] = c.R
		s.buf[off+1] = c.G
		s.buf[off+2] = c.B
	}
	_, err := s.w.Write(s.buf)
	return err
}

func (s *Raw) Halt() error {
	clear(s.buf)
	_, err := s.w.Write(s.buf)
	return err
}
