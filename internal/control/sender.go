package control

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultUnit       = 200 * time.Millisecond
	LegacyUnit        = 50 * time.Millisecond
	minWait, maxWait  = 10, 20
	DefaultImageCount = 5
)

type SenderOptions struct {
	// Count is the number of distinct command bytes, sent as 0..Count-1.
	Count int
	// Unit times a random factor in [10, 20) is the pause after each byte.
	Unit time.Duration
	// AllowRepeat lets the same byte be sent twice in a row.
	AllowRepeat bool
	Seed        uint64
}

func DefaultSenderOptions() SenderOptions {
	return SenderOptions{
		Count: DefaultImageCount,
		Unit:  DefaultUnit,
	}
}

// Sender writes random image selections to a controller, the stimulus the
// host side produces.
type Sender struct {
	w    io.Writer
	opts SenderOptions
	rand *rand.Rand
	prev int
	log  zerolog.Logger
}

func NewSender(w io.Writer, o SenderOptions, log zerolog.Logger) (*Sender, error) {
	if o.Count < 1 || o.Count > 256 {
		return nil, fmt.Errorf("command count must be in [1, 256], got %d", o.Count)
	}
	if !o.AllowRepeat && o.Count < 2 {
		return nil, fmt.Errorf("cannot avoid repeats with a single command")
	}
	if o.Unit <= 0 {
		o.Unit = DefaultUnit
	}
	return &Sender{
		w:    w,
		opts: o,
		rand: rand.New(rand.NewPCG(o.Seed, o.Seed)),
		prev: -1,
		log:  log,
	}, nil
}

// Next picks the next byte and the pause that follows it.
func (s *Sender) Next() (byte, time.Duration) {
	wait := s.opts.Unit * time.Duration(minWait+s.rand.IntN(maxWait-minWait))
	b := s.rand.IntN(s.opts.Count)
	for !s.opts.AllowRepeat && b == s.prev {
		b = s.rand.IntN(s.opts.Count)
	}
	s.prev = b
	return byte(b), wait
}

// Run sends until ctx is done or a write fails.
func (s *Sender) Run(ctx context.Context) error {
	t := time.NewTimer(0)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		b, wait := s.Next()
		if _, err := s.w.Write([]byte{b}); err != nil {
			return fmt.Errorf("send %d: %w", b, err)
		}
		s.log.Debug().Uint8("byte", b).Dur("wait", wait).Msg("sent")
		t.Reset(wait)
	}
}
