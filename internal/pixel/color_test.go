package pixel_test

import (
	"image/color"
	"testing"

	. "github.com/coreman2200/funtimes-c3leds/internal/pixel"
	"github.com/stretchr/testify/assert"
)

var TestHexIsExpectedColor = []struct {
	Hex    uint32
	Expect RGB8
}{
	{0xf74c00, RGB8{R: 247, G: 76, B: 0}},
	{0x4352ff, RGB8{R: 67, G: 82, B: 255}},
	{0xd0d0cf, RGB8{R: 208, G: 208, B: 207}},
	{0x000000, Black},
}

func TestHex(t *testing.T) {
	for _, tt := range TestHexIsExpectedColor {
		c := Hex(tt.Hex)
		assert.Equal(t, tt.Expect, c)
		assert.Equal(t, tt.Hex, c.Uint32())
	}
}

func TestFromColor(t *testing.T) {
	assert.Equal(t, RGB8{R: 1, G: 2, B: 3}, FromColor(color.RGBA{R: 1, G: 2, B: 3, A: 255}))
	assert.Equal(t, RGB8{R: 9, G: 8, B: 7}, FromColor(RGB8{R: 9, G: 8, B: 7}))
}

func TestRGB565(t *testing.T) {
	assert.Equal(t, RGB8{R: 255, G: 255, B: 255}, RGB565(0xffff).RGB8())
	assert.Equal(t, Black, RGB565(0).RGB8())
	assert.Equal(t, RGB8{R: 255}, RGB565(0xf800).RGB8())
	assert.Equal(t, RGB565(0xf800), To565(RGB8{R: 255}))
}
