// Package palette holds the colours particles are launched with.
package palette

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/coreman2200/funtimes-c3leds/internal/pixel"
	"github.com/lucasb-eyer/go-colorful"
)

type Palette []pixel.RGB8

// Default matches the colours of the display images.
var Default = Palette{
	pixel.Hex(0xf74c00), // Ferris
	pixel.Hex(0x4352ff), // EWG
	pixel.Hex(0xd0d0cf), // 36c3 white
	pixel.Hex(0xfe5000), // 36c3 orange
	pixel.Hex(0x00bb31), // 36c3 green
}

// Parse reads colours written as "#rrggbb", "rrggbb" or "#rgb".
func Parse(hexes []string) (Palette, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	if len(hexes) > 256 {
		return nil, fmt.Errorf("palette has %d colours, at most 256 are addressable", len(hexes))
	}
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		h = strings.TrimSpace(h)
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette colour %q: %w", h, err)
		}
		r, g, b := c.RGB255()
		p = append(p, pixel.RGB8{R: r, G: g, B: b})
	}
	return p, nil
}

// Hex formats the palette the way Parse reads it.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}.Hex()
	}
	return out
}

// At returns colour i, if the palette has one.
func (p Palette) At(i int) (pixel.RGB8, bool) {
	if i < 0 || i >= len(p) {
		return pixel.Black, false
	}
	return p[i], true
}

func (p Palette) Pick(r *rand.Rand) pixel.RGB8 {
	return p[r.IntN(len(p))]
}
