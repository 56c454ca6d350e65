// Package hub75 drives HUB75 LED matrix panels from a pre-encoded bit-plane
// frame buffer using binary coded modulation.
//
// One port byte carries R1 G1 B1 in bits 0-2, R2 G2 B2 in bits 3-5 and the
// shift clock in bit 6; bit 7 is not connected. The clock level is baked into
// the buffer (low on even bytes, high on odd ones), so shifting a line out is
// nothing but 128 plain port writes.
package hub75

import (
	"image"
	"image/color"
	"sync"
)

const (
	// Rows is the number of row-pairs selected by the 4 address lines.
	Rows = 16
	// Planes is the number of bit-planes per colour channel.
	Planes = 8
	// ColumnBytes is the number of port writes per shifted line.
	ColumnBytes = 128

	Width  = ColumnBytes / 2
	Height = Rows * 2

	// Steps is the number of (row, plane) lines in one full refresh.
	Steps = Rows * Planes
)

const (
	LowerMask uint8 = 0b0000_0111 // R1 G1 B1
	UpperMask uint8 = 0b0011_1000 // R2 G2 B2
	ClockBit  uint8 = 0b0100_0000
)

// Frame holds the port bytes for every row and bit-plane.
//
// Draws and the scan-out may run on different goroutines; the lock keeps
// single lines consistent, but a frame drawn during a refresh can still show
// planes of both the old and new image for one refresh.
type Frame struct {
	mu   sync.RWMutex
	data [Rows][Planes][ColumnBytes]byte
}

func NewFrame() *Frame {
	f := &Frame{}
	f.clear()
	return f
}

// Clear blanks the frame, leaving only the clock pattern.
func (f *Frame) Clear() {
	f.mu.Lock()
	f.clear()
	f.mu.Unlock()
}

func (f *Frame) clear() {
	for row := range f.data {
		for plane := range f.data[row] {
			line := &f.data[row][plane]
			for i := range line {
				if i%2 == 0 {
					line[i] = 0
				} else {
					line[i] = ClockBit
				}
			}
		}
	}
}

// Line copies the port bytes of one (row, plane) line into dst.
func (f *Frame) Line(row, plane int, dst *[ColumnBytes]byte) {
	f.mu.RLock()
	*dst = f.data[row][plane]
	f.mu.RUnlock()
}

// Byte returns a single stored port byte.
func (f *Frame) Byte(row, plane, col int) byte {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data[row][plane][col]
}

func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

func (f *Frame) ColorModel() color.Model {
	return color.RGBAModel
}

// At decodes the bit-planes of a pixel back into its gamma corrected colour.
func (f *Frame) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(f.Bounds())) {
		return color.RGBA{}
	}
	shift := halfShift(y)
	f.mu.RLock()
	defer f.mu.RUnlock()
	var r, g, b uint8
	for plane := 0; plane < Planes; plane++ {
		bits := f.data[rowOf(y)][plane][x*2] >> shift
		r |= (bits & 1) << plane
		g |= (bits >> 1 & 1) << plane
		b |= (bits >> 2 & 1) << plane
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func rowOf(y int) int {
	return ((y % Rows) + Rows) % Rows
}

// halfShift returns the bit position of the colour triple for y. The rows
// below 16 go to the R2 G2 B2 lines.
func halfShift(y int) uint {
	if y < Rows {
		return 3
	}
	return 0
}
