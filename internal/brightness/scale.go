package brightness

import (
	"iter"

	"github.com/coreman2200/funtimes-c3leds/internal/pixel"
)

// Full is the multiplier that leaves a colour unchanged.
const Full uint16 = 256

// Scale multiplies each channel by m/256, truncating. m is clamped to Full.
func Scale(c pixel.RGB8, m uint16) pixel.RGB8 {
	if m > Full {
		m = Full
	}
	return pixel.RGB8{
		R: uint8(uint16(c.R) * m / 256),
		G: uint8(uint16(c.G) * m / 256),
		B: uint8(uint16(c.B) * m / 256),
	}
}

// Adjust scales every pixel of seq by level/256 on the way through.
func Adjust(seq iter.Seq[pixel.Pixel], level uint16) iter.Seq[pixel.Pixel] {
	return func(yield func(pixel.Pixel) bool) {
		for p := range seq {
			p.Color = Scale(p.Color, level)
			if !yield(p) {
				return
			}
		}
	}
}
