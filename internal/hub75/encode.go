package hub75

import (
	"image"
	"image/color"
	"iter"

	"github.com/coreman2200/funtimes-c3leds/internal/brightness"
	"github.com/coreman2200/funtimes-c3leds/internal/pixel"
)

// Draw encodes one pixel into all bit-planes of its row. x must lie in
// [0, Width); y wraps every 16 rows onto the same row lines.
func (f *Frame) Draw(p pixel.Pixel) {
	f.mu.Lock()
	f.draw(p)
	f.mu.Unlock()
}

// DrawSeq encodes every pixel of seq under a single lock.
func (f *Frame) DrawSeq(seq iter.Seq[pixel.Pixel]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for p := range seq {
		f.draw(p)
	}
}

// Set implements draw.Image.
func (f *Frame) Set(x, y int, c color.Color) {
	f.Draw(pixel.Pixel{Point: image.Pt(x, y), Color: pixel.FromColor(c)})
}

func (f *Frame) draw(p pixel.Pixel) {
	c := brightness.GammaRGB(p.Color)
	row := rowOf(p.Point.Y)
	col := p.Point.X * 2

	shift := halfShift(p.Point.Y)
	mask := LowerMask << shift

	for plane := 0; plane < Planes; plane++ {
		bits := (c.R>>plane)&1 | ((c.G>>plane)&1)<<1 | ((c.B>>plane)&1)<<2
		line := &f.data[row][plane]
		v := line[col]&^mask | bits<<shift
		line[col] = v
		line[col+1] = v | ClockBit
	}
}
