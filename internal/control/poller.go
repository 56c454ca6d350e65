package control

import (
	"context"
	"errors"
	"io"
	"os"
	"time"
)

const (
	pollBuffer = 64
	retryDelay = 10 * time.Millisecond
)

// Poller turns a blocking byte stream into non-blocking polls. Read errors
// only mean that no byte is available; the reader stops at EOF, when the
// source is closed or when its context ends.
type Poller struct {
	bytes chan byte
}

func NewPoller(ctx context.Context, r io.Reader) *Poller {
	p := &Poller{bytes: make(chan byte, pollBuffer)}
	go p.read(ctx, r)
	return p
}

func (p *Poller) read(ctx context.Context, r io.Reader) {
	defer close(p.bytes)
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			select {
			case p.bytes <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return
			}
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// Poll returns the next received byte without waiting.
func (p *Poller) Poll() (byte, bool) {
	select {
	case b, ok := <-p.bytes:
		return b, ok
	default:
		return 0, false
	}
}

// C delivers received bytes and is closed when the reader stops.
func (p *Poller) C() <-chan byte {
	return p.bytes
}
