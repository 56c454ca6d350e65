package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-c3leds/internal/app"
	"github.com/coreman2200/funtimes-c3leds/internal/assets"
	"github.com/coreman2200/funtimes-c3leds/internal/config"
	"github.com/coreman2200/funtimes-c3leds/internal/control"
	"github.com/coreman2200/funtimes-c3leds/internal/hub75"
)

// simRate paces the simulated panel, which would otherwise refresh as fast
// as the CPU allows.
const simRate = 60

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "path to config.yaml")
		backend    = pflag.String("backend", "sim", "panel backend: periph | cdev | sim")
		scan       = pflag.String("scan", "blocking", "scan-out: blocking | pulsed")
		skipPlanes = pflag.Int("skip-planes", 0, "drop the lowest bit-planes (blocking scan only)")
		tty        = pflag.StringP("tty", "t", "", "serial port receiving image commands")
		baud       = pflag.Int("baud", control.DefaultBaud, "serial baud rate")
		verbose    = pflag.BoolP("verbose", "v", false, "debug logging")
		dump       = pflag.String("write-config", "", "write the effective config to this path and exit")
	)
	pflag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		if c, err := config.Load(*configPath); err != nil {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		} else {
			cfg = c
		}
	}

	// ---- flags given explicitly override config ----
	d := &cfg.Display
	if pflag.CommandLine.Changed("backend") {
		d.Backend = *backend
	}
	if pflag.CommandLine.Changed("scan") {
		d.Scan = *scan
	}
	if pflag.CommandLine.Changed("skip-planes") {
		d.SkipPlanes = *skipPlanes
	}
	if pflag.CommandLine.Changed("tty") {
		d.Serial.Port = *tty
	}
	if pflag.CommandLine.Changed("baud") {
		d.Serial.Baud = *baud
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	log.Logger = app.NewLogger(os.Stdout, cfg.LogLevel)

	if *dump != "" {
		if err := config.Save(*dump, cfg); err != nil {
			log.Fatal().Err(err).Msg("write config")
		}
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("display stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	d := cfg.Display

	images, err := assets.Presets()
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	for i, file := range d.Images {
		if err := images.Override(i, file); err != nil {
			return err
		}
	}

	frame := hub75.NewFrame()
	scan, release, err := scanner(frame, d)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn().Err(err).Msg("release panel lines")
		}
	}()

	var bytes <-chan byte
	if d.Serial.Port != "" {
		port, err := control.OpenSerial(d.Serial.Port, d.Serial.Baud)
		if err != nil {
			return err
		}
		defer port.Close()
		bytes = control.NewPoller(ctx, port).C()
	} else {
		logger.Warn().Msg("no serial port; showing the start image only")
	}

	logger.Info().
		Str("backend", d.Backend).
		Str("scan", d.Scan).
		Int("images", images.Len()).
		Str("tty", d.Serial.Port).
		Msg("display running")

	display := app.NewDisplay(frame, images, scan, app.DisplayOptions{
		StartImage: 0,
		DemoLevels: d.DemoLevels,
		DemoDelay:  d.DemoDelay,
	}, logger)
	return display.Run(ctx, bytes)
}

// scanner opens the panel lines and picks the scan-out strategy.
func scanner(frame *hub75.Frame, d config.Display) (app.ScanFunc, func() error, error) {
	release := func() error { return nil }

	if d.Backend == "sim" {
		sim := hub75.NewSim()
		refresh, err := simRefresh(frame, sim, d)
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context) error {
			ticker := time.NewTicker(time.Second / simRate)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					refresh()
				}
			}
		}, release, nil
	}

	var lines hub75.Lines
	switch d.Backend {
	case "periph":
		if _, err := host.Init(); err != nil {
			return nil, nil, fmt.Errorf("host init: %w", err)
		}
		p := d.Pins
		l, err := hub75.OpenPins(hub75.PinNames{
			Port:    [7]string{p.R1, p.G1, p.B1, p.R2, p.G2, p.B2, p.CLK},
			Address: [4]string{p.A, p.B, p.C, p.D},
			Latch:   p.LAT,
			OE:      p.OE,
		})
		if err != nil {
			return nil, nil, err
		}
		lines = l
	case "cdev":
		o := d.Lines
		l, closer, err := hub75.OpenLines(hub75.LineOffsets{
			Chip:    o.Chip,
			Port:    [7]int{o.R1, o.G1, o.B1, o.R2, o.G2, o.B2, o.CLK},
			Address: [4]int{o.A, o.B, o.C, o.D},
			Latch:   o.LAT,
			OE:      o.OE,
		})
		if err != nil {
			return nil, nil, err
		}
		lines, release = l, closer
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", d.Backend)
	}

	if d.Scan == "pulsed" {
		timer := hub75.NewSoftTimer(lines.OE, d.TimerPeriod, d.TimerTick)
		p, err := hub75.NewPulsed(frame, lines, timer)
		if err != nil {
			_ = release()
			return nil, nil, err
		}
		return func(ctx context.Context) error {
			return p.Run(ctx, timer.Done())
		}, release, nil
	}

	b, err := hub75.NewBlocking(frame, lines, hub75.BusyClock{}, hub75.BlockingOptions{
		Unit:       d.Unit,
		RowGap:     d.RowGap,
		SkipPlanes: d.SkipPlanes,
	})
	if err != nil {
		_ = release()
		return nil, nil, err
	}
	return b.Run, release, nil
}

func simRefresh(frame *hub75.Frame, sim *hub75.Sim, d config.Display) (func(), error) {
	if d.Scan == "pulsed" {
		p, err := hub75.NewPulsed(frame, sim.Lines(), sim.Timer(d.TimerPeriod, d.TimerTick))
		if err != nil {
			return nil, err
		}
		return func() {
			for i := 0; i < hub75.Steps; i++ {
				p.Advance()
			}
		}, nil
	}
	b, err := hub75.NewBlocking(frame, sim.Lines(), sim, hub75.BlockingOptions{
		Unit:       d.Unit,
		RowGap:     d.RowGap,
		SkipPlanes: d.SkipPlanes,
	})
	if err != nil {
		return nil, err
	}
	return b.Output, nil
}
