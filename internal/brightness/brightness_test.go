package brightness

import (
	"slices"
	"testing"

	"github.com/coreman2200/funtimes-c3leds/internal/pixel"
	"github.com/stretchr/testify/assert"
)

func TestGammaTable(t *testing.T) {
	assert.Equal(t, uint8(0), Gamma(0))
	assert.Equal(t, uint8(255), Gamma(255))
	assert.Equal(t, uint8(37), Gamma(128))
	for v := 1; v < 256; v++ {
		if Gamma(uint8(v)) < Gamma(uint8(v-1)) {
			t.Fatalf("gamma not monotonic at %d: %d < %d", v, Gamma(uint8(v)), Gamma(uint8(v-1)))
		}
	}
}

func TestGammaRGB(t *testing.T) {
	c := GammaRGB(pixel.RGB8{R: 255, G: 128, B: 0})
	assert.Equal(t, pixel.RGB8{R: 255, G: 37, B: 0}, c)
}

func TestScale(t *testing.T) {
	tests := []struct {
		name   string
		in     pixel.RGB8
		m      uint16
		expect pixel.RGB8
	}{
		{"full", pixel.RGB8{R: 255, G: 100, B: 1}, 256, pixel.RGB8{R: 255, G: 100, B: 1}},
		{"zero", pixel.RGB8{R: 255, G: 100, B: 1}, 0, pixel.Black},
		{"truncates", pixel.RGB8{R: 255, G: 100, B: 1}, 255, pixel.RGB8{R: 254, G: 99, B: 0}},
		{"half", pixel.RGB8{R: 200, G: 101, B: 3}, 128, pixel.RGB8{R: 100, G: 50, B: 1}},
		{"trail step", pixel.RGB8{R: 254, G: 80}, 238, pixel.RGB8{R: 236, G: 74}},
		{"clamped", pixel.RGB8{R: 10}, 1000, pixel.RGB8{R: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Scale(tt.in, tt.m))
		})
	}
}

func TestAdjust(t *testing.T) {
	src := []pixel.Pixel{
		{Color: pixel.RGB8{R: 200}},
		{Color: pixel.RGB8{G: 100}},
		{Color: pixel.RGB8{B: 50}},
	}
	got := slices.Collect(Adjust(slices.Values(src), 128))
	assert.Equal(t, []pixel.Pixel{
		{Color: pixel.RGB8{R: 100}},
		{Color: pixel.RGB8{G: 50}},
		{Color: pixel.RGB8{B: 25}},
	}, got)

	// stops early when the consumer does
	n := 0
	for range Adjust(slices.Values(src), 256) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
