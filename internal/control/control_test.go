package control

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		b      byte
		expect Command
	}{
		{0, Command{Op: ShowImage, Image: 0}},
		{4, Command{Op: ShowImage, Image: 4}},
		{5, Command{Op: Ignore}},
		{ClearByte, Command{Op: Clear}},
		{DemoByte, Command{Op: BrightnessDemo}},
		{0xFF, Command{Op: Ignore}},
	}
	for _, tt := range tests {
		t.Run(tt.expect.String(), func(t *testing.T) {
			assert.Equal(t, tt.expect, Decode(tt.b, 5))
		})
	}
}

func TestPollerDrainsReader(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPoller(ctx, bytes.NewReader([]byte{1, 2, 3}))
	var got []byte
	for b := range p.C() {
		got = append(got, b)
	}
	assert.Equal(t, []byte{1, 2, 3}, got)

	_, ok := p.Poll()
	assert.False(t, ok)
}

func TestPollerNonBlocking(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, w := io.Pipe()
	defer w.Close()
	p := NewPoller(ctx, r)

	_, ok := p.Poll()
	assert.False(t, ok)

	go func() { _, _ = w.Write([]byte{42}) }()
	require.Eventually(t, func() bool {
		b, ok := p.Poll()
		return ok && b == 42
	}, time.Second, time.Millisecond)
}

type flakyReader struct {
	calls int
}

func (f *flakyReader) Read(p []byte) (int, error) {
	f.calls++
	switch f.calls {
	case 1:
		return 0, errors.New("framing error")
	case 2:
		p[0] = 7
		return 1, nil
	}
	return 0, io.EOF
}

func TestPollerSkipsReadErrors(t *testing.T) {
	p := NewPoller(context.Background(), &flakyReader{})
	var got []byte
	for b := range p.C() {
		got = append(got, b)
	}
	assert.Equal(t, []byte{7}, got)
}

func TestSenderOptions(t *testing.T) {
	_, err := NewSender(io.Discard, SenderOptions{Count: 0}, zerolog.Nop())
	assert.Error(t, err)
	_, err = NewSender(io.Discard, SenderOptions{Count: 1}, zerolog.Nop())
	assert.Error(t, err)
	_, err = NewSender(io.Discard, SenderOptions{Count: 1, AllowRepeat: true}, zerolog.Nop())
	assert.NoError(t, err)
}

func TestSenderNoRepeat(t *testing.T) {
	s, err := NewSender(io.Discard, DefaultSenderOptions(), zerolog.Nop())
	require.NoError(t, err)

	prev := -1
	for i := 0; i < 1000; i++ {
		b, wait := s.Next()
		assert.Less(t, int(b), DefaultImageCount)
		assert.NotEqual(t, prev, int(b))
		assert.GreaterOrEqual(t, wait, 2*time.Second)
		assert.Less(t, wait, 4*time.Second)
		assert.Zero(t, wait%DefaultUnit)
		prev = int(b)
	}
}

func TestSenderLegacy(t *testing.T) {
	s, err := NewSender(io.Discard, SenderOptions{Count: 5, Unit: LegacyUnit, AllowRepeat: true, Seed: 1}, zerolog.Nop())
	require.NoError(t, err)

	repeats := 0
	prev := -1
	for i := 0; i < 1000; i++ {
		b, wait := s.Next()
		assert.GreaterOrEqual(t, wait, 500*time.Millisecond)
		assert.Less(t, wait, time.Second)
		if int(b) == prev {
			repeats++
		}
		prev = int(b)
	}
	assert.Positive(t, repeats)
}

func TestSenderDeterministic(t *testing.T) {
	a, _ := NewSender(io.Discard, DefaultSenderOptions(), zerolog.Nop())
	b, _ := NewSender(io.Discard, DefaultSenderOptions(), zerolog.Nop())
	for i := 0; i < 20; i++ {
		x, dx := a.Next()
		y, dy := b.Next()
		assert.Equal(t, x, y)
		assert.Equal(t, dx, dy)
	}
}

type countingWriter struct {
	buf    bytes.Buffer
	n      int
	cancel context.CancelFunc
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n++
	if w.n == 1 {
		w.cancel()
	}
	return w.buf.Write(p)
}

func TestSenderRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &countingWriter{cancel: cancel}
	s, err := NewSender(w, SenderOptions{Count: 5, Unit: time.Hour}, zerolog.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Equal(t, 1, w.buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestSenderRunWriteError(t *testing.T) {
	s, err := NewSender(failingWriter{}, DefaultSenderOptions(), zerolog.Nop())
	require.NoError(t, err)
	assert.ErrorIs(t, s.Run(context.Background()), io.ErrClosedPipe)
}
