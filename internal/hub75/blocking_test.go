package hub75

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/coreman2200/funtimes-c3leds/internal/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockingLitTime(t *testing.T) {
	f := NewFrame()
	f.Draw(pixel.Pixel{Point: image.Pt(5, 3), Color: pixel.RGB8{R: 255, G: 128}})
	f.Draw(pixel.Pixel{Point: image.Pt(5, 19), Color: pixel.RGB8{B: 255}})
	f.Draw(pixel.Pixel{Point: image.Pt(63, 31), Color: pixel.RGB8{R: 128, G: 128, B: 128}})

	sim := NewSim()
	b, err := NewBlocking(f, sim.Lines(), sim, BlockingOptions{})
	require.NoError(t, err)
	b.Output()

	us := time.Microsecond
	assert.Equal(t, [3]time.Duration{255 * us, 37 * us, 0}, sim.Lit(5, 3))
	assert.Equal(t, [3]time.Duration{0, 0, 255 * us}, sim.Lit(5, 19))
	assert.Equal(t, [3]time.Duration{37 * us, 37 * us, 37 * us}, sim.Lit(63, 31))
	assert.Equal(t, [3]time.Duration{}, sim.Lit(4, 3))

	assert.Equal(t, Rows, sim.RowSelects)
	assert.Equal(t, Steps, sim.Latches)
	assert.Equal(t, Steps, sim.Pulses)
	assert.Equal(t, Steps*Width, sim.Shifts)
	assert.Equal(t, Rows*(255*us+DefaultRowGap), sim.Now())
}

func TestBlockingSkipPlanes(t *testing.T) {
	f := NewFrame()
	f.Draw(pixel.Pixel{Point: image.Pt(0, 0), Color: pixel.RGB8{R: 255, G: 128, B: 40}})

	sim := NewSim()
	b, err := NewBlocking(f, sim.Lines(), sim, BlockingOptions{
		Unit:       2 * time.Microsecond,
		RowGap:     time.Microsecond,
		SkipPlanes: 2,
	})
	require.NoError(t, err)
	b.Output()

	// gamma(40) = 1, below the lowest shown plane
	us := time.Microsecond
	assert.Equal(t, [3]time.Duration{2 * 63 * us, 2 * 9 * us, 0}, sim.Lit(0, 0))
	assert.Equal(t, Rows*(Planes-2), sim.Latches)
}

func TestNewBlockingErrors(t *testing.T) {
	sim := NewSim()
	f := NewFrame()
	tests := []struct {
		name  string
		frame *Frame
		lines Lines
		clock Clock
		opts  BlockingOptions
	}{
		{"nil frame", nil, sim.Lines(), sim, BlockingOptions{}},
		{"missing enable", f, Lines{Port: sim, Rows: sim, Latch: simLine(sim.setLatch)}, sim, BlockingOptions{}},
		{"nil clock", f, sim.Lines(), nil, BlockingOptions{}},
		{"skip all planes", f, sim.Lines(), sim, BlockingOptions{SkipPlanes: Planes}},
		{"negative skip", f, sim.Lines(), sim, BlockingOptions{SkipPlanes: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBlocking(tt.frame, tt.lines, tt.clock, tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestBlockingRunStops(t *testing.T) {
	sim := NewSim()
	b, err := NewBlocking(NewFrame(), sim.Lines(), sim, BlockingOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Run(ctx), context.Canceled)
	assert.Zero(t, sim.Latches)
}
