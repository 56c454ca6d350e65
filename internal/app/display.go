// Package app ties the drivers together into the display and strip
// controllers.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/coreman2200/funtimes-c3leds/internal/assets"
	"github.com/coreman2200/funtimes-c3leds/internal/brightness"
	"github.com/coreman2200/funtimes-c3leds/internal/control"
	"github.com/coreman2200/funtimes-c3leds/internal/hub75"
)

// ScanFunc refreshes the panel until ctx is done.
type ScanFunc func(ctx context.Context) error

type DisplayOptions struct {
	// StartImage is shown before any command arrives; negative for none.
	StartImage int
	DemoLevels []uint16
	DemoDelay  time.Duration
}

// Display shows preset images on a HUB75 panel as selected over serial.
type Display struct {
	frame  *hub75.Frame
	images *assets.Set
	scan   ScanFunc
	opts   DisplayOptions
	log    zerolog.Logger
}

func NewDisplay(f *hub75.Frame, images *assets.Set, scan ScanFunc, o DisplayOptions, log zerolog.Logger) *Display {
	return &Display{
		frame:  f,
		images: images,
		scan:   scan,
		opts:   o,
		log:    log,
	}
}

// Show replaces the panel contents with image i.
func (d *Display) Show(i int) error {
	return d.showAt(i, brightness.Full)
}

func (d *Display) showAt(i int, level uint16) error {
	img, ok := d.images.Image(i)
	if !ok {
		return fmt.Errorf("no image %d", i)
	}
	seq := assets.Clip(assets.Pixels(img), d.frame.Bounds())
	if level < brightness.Full {
		seq = brightness.Adjust(seq, level)
	}
	d.frame.Clear()
	d.frame.DrawSeq(seq)
	return nil
}

// Demo shows image 0 at every demo level in turn.
func (d *Display) Demo(ctx context.Context) error {
	for _, level := range d.opts.DemoLevels {
		if err := d.showAt(0, level); err != nil {
			return err
		}
		d.log.Debug().Uint16("level", level).Msg("brightness demo")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.opts.DemoDelay):
		}
	}
	return nil
}

// Handle executes one decoded command.
func (d *Display) Handle(ctx context.Context, cmd control.Command) error {
	switch cmd.Op {
	case control.ShowImage:
		d.log.Info().Int("image", cmd.Image).Str("name", d.images.Name(cmd.Image)).Msg("show")
		return d.Show(cmd.Image)
	case control.Clear:
		d.log.Info().Msg("clear")
		d.frame.Clear()
	case control.BrightnessDemo:
		d.log.Info().Int("levels", len(d.opts.DemoLevels)).Msg("brightness demo")
		return d.Demo(ctx)
	default:
		d.log.Debug().Msg("ignored command byte")
	}
	return nil
}

// Run refreshes the panel and executes the commands received on bytes
// until ctx is done or bytes is closed.
func (d *Display) Run(ctx context.Context, bytes <-chan byte) error {
	if d.opts.StartImage >= 0 {
		if err := d.Show(d.opts.StartImage); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return d.scan(ctx)
	})
	group.Go(func() error {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return nil
			case b, ok := <-bytes:
				if !ok {
					d.log.Info().Msg("command source closed")
					return nil
				}
				cmd := control.Decode(b, d.images.Len())
				if err := d.Handle(ctx, cmd); err != nil && !stopped(err) {
					d.log.Warn().Err(err).Stringer("cmd", cmd).Msg("command failed")
				}
			}
		}
	})

	if err := group.Wait(); err != nil && !stopped(err) {
		return err
	}
	return nil
}

func stopped(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
