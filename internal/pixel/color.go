package pixel

import (
	"image"
	"image/color"
)

const (
	RED_OFFSET   uint8 = 0x10
	GREEN_OFFSET uint8 = 0x08
	BLUE_OFFSET  uint8 = 0x0
)

// RGB8 is a 24-bit colour as drawn onto panels and strips.
type RGB8 struct {
	R, G, B uint8
}

var Black = RGB8{}

// Hex builds a colour from 0xRRGGBB.
func Hex(v uint32) RGB8 {
	return RGB8{
		R: getcolor(v, RED_OFFSET),
		G: getcolor(v, GREEN_OFFSET),
		B: getcolor(v, BLUE_OFFSET),
	}
}

// Uint32 packs the colour as 0xRRGGBB.
func (c RGB8) Uint32() uint32 {
	var v uint32
	v = setcolor(v, c.R, RED_OFFSET)
	v = setcolor(v, c.G, GREEN_OFFSET)
	v = setcolor(v, c.B, BLUE_OFFSET)
	return v
}

// RGBA implements color.Color.
func (c RGB8) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

func (c RGB8) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// FromColor converts any color.Color, dropping alpha after premultiplication.
func FromColor(c color.Color) RGB8 {
	if v, ok := c.(RGB8); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return RGB8{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// RGB565 is the 16-bit colour used by the older display firmware.
type RGB565 uint16

// RGB8 widens each channel, replicating the top bits into the low bits.
func (c RGB565) RGB8() RGB8 {
	r := uint8(c>>11) & 0x1f
	g := uint8(c>>5) & 0x3f
	b := uint8(c) & 0x1f
	return RGB8{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
	}
}

func To565(c RGB8) RGB565 {
	return RGB565(uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3))
}

// Pixel is one coordinate/colour pair produced by an image source.
type Pixel struct {
	Point image.Point
	Color RGB8
}

func setcolor(c uint32, n uint8, off uint8) uint32 {
	var val uint32 = uint32(n) << off
	var mask uint32 = 0xFF << off
	return (c & (^mask)) | val
}

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & (mask)) >> off)
}
