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

type fakeTimer struct {
	running  bool
	period   uint16
	compares []uint16
	starts   int
}

func (t *fakeTimer) Running() bool       { return t.running }
func (t *fakeTimer) Period() uint16      { return t.period }
func (t *fakeTimer) SetCompare(v uint16) { t.compares = append(t.compares, v) }
func (t *fakeTimer) StartOnePulse()      { t.starts++ }

type rowLog []uint8

func (r *rowLog) SelectRow(row uint8) { *r = append(*r, row) }

func TestPulsedSchedule(t *testing.T) {
	sim := NewSim()
	var rows rowLog
	lines := sim.Lines()
	lines.Rows = &rows
	timer := &fakeTimer{period: 1000}

	p, err := NewPulsed(NewFrame(), lines, timer)
	require.NoError(t, err)

	for i := 0; i < Steps; i++ {
		p.Advance()
	}

	require.Len(t, timer.compares, Steps)
	for i, c := range timer.compares {
		plane := i % Planes
		assert.Equal(t, uint16(1000-(1<<plane)), c, "step %d", i)
	}
	want := make(rowLog, Rows)
	for i := range want {
		want[i] = uint8(i)
	}
	assert.Equal(t, want, rows)
	assert.Equal(t, Steps, timer.starts)
	assert.Equal(t, Steps, sim.Latches)

	// the counter wraps onto row 0, plane 0
	p.Advance()
	assert.Equal(t, uint8(0), rows[len(rows)-1])
	assert.Equal(t, uint16(999), timer.compares[len(timer.compares)-1])
}

func TestPulsedLitTime(t *testing.T) {
	f := NewFrame()
	f.Draw(pixel.Pixel{Point: image.Pt(9, 9), Color: pixel.RGB8{R: 255, G: 128, B: 1}})
	f.Draw(pixel.Pixel{Point: image.Pt(9, 25), Color: pixel.RGB8{R: 128}})

	sim := NewSim()
	p, err := NewPulsed(f, sim.Lines(), sim.Timer(256, time.Microsecond))
	require.NoError(t, err)
	for i := 0; i < Steps; i++ {
		p.Advance()
	}

	us := time.Microsecond
	assert.Equal(t, [3]time.Duration{255 * us, 37 * us, 0}, sim.Lit(9, 9))
	assert.Equal(t, [3]time.Duration{37 * us, 0, 0}, sim.Lit(9, 25))
	assert.Equal(t, Steps, sim.Pulses)
	assert.Equal(t, Rows, sim.RowSelects)
	assert.Equal(t, Steps*256*us, sim.Now())
}

func TestPulsedTimerStillRunning(t *testing.T) {
	sim := NewSim()
	timer := &fakeTimer{period: 1000, running: true}
	p, err := NewPulsed(NewFrame(), sim.Lines(), timer)
	require.NoError(t, err)

	assert.PanicsWithValue(t, ErrTimerRunning, p.Advance)
	assert.Zero(t, timer.starts)
}

func TestNewPulsedErrors(t *testing.T) {
	sim := NewSim()
	_, err := NewPulsed(nil, sim.Lines(), &fakeTimer{period: 1000})
	assert.Error(t, err)
	_, err = NewPulsed(NewFrame(), Lines{}, &fakeTimer{period: 1000})
	assert.Error(t, err)
	_, err = NewPulsed(NewFrame(), sim.Lines(), nil)
	assert.Error(t, err)
	_, err = NewPulsed(NewFrame(), sim.Lines(), &fakeTimer{period: 128})
	assert.Error(t, err)
	_, err = NewPulsed(NewFrame(), sim.Lines(), &fakeTimer{period: 129})
	assert.NoError(t, err)
}

func TestPulsedRun(t *testing.T) {
	sim := NewSim()
	timer := sim.Timer(300, time.Microsecond)
	p, err := NewPulsed(NewFrame(), sim.Lines(), timer)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Run(ctx, timer.Done()), context.Canceled)
	assert.GreaterOrEqual(t, sim.Latches, 1)
}

func TestSoftTimer(t *testing.T) {
	var oe outputLog
	timer := NewSoftTimer(&oe, 20, time.Microsecond)
	assert.Equal(t, uint16(20), timer.Period())

	timer.SetCompare(10)
	timer.StartOnePulse()
	assert.True(t, timer.Running())

	select {
	case <-timer.Done():
	case <-time.After(time.Second):
		t.Fatal("pulse never completed")
	}
	assert.False(t, timer.Running())
	assert.Equal(t, []bool{true, false, true}, oe.levels())
}
