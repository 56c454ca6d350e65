package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-c3leds/internal/app"
	"github.com/coreman2200/funtimes-c3leds/internal/comet"
	"github.com/coreman2200/funtimes-c3leds/internal/config"
	"github.com/coreman2200/funtimes-c3leds/internal/control"
	"github.com/coreman2200/funtimes-c3leds/internal/palette"
	"github.com/coreman2200/funtimes-c3leds/internal/strip"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "path to config.yaml")
		kind       = pflag.String("strip", "sim", "strip: ws2812 | sk6812w | apa102 | console | sim")
		spiPort    = pflag.String("spi", "", "SPI port name, e.g. /dev/spidev0.0 (default: first found)")
		length     = pflag.Int("length", 400, "number of LEDs")
		trail      = pflag.Int("trail", 15, "trail length in LEDs")
		tty        = pflag.StringP("tty", "t", "", "serial port receiving colour commands")
		verbose    = pflag.BoolP("verbose", "v", false, "debug logging")
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

	tc := &cfg.Tail
	if pflag.CommandLine.Changed("strip") {
		tc.Strip.Kind = *kind
	}
	if pflag.CommandLine.Changed("spi") {
		tc.Strip.Port = *spiPort
	}
	if pflag.CommandLine.Changed("length") {
		tc.Length = *length
	}
	if pflag.CommandLine.Changed("trail") {
		tc.Trail = *trail
	}
	if pflag.CommandLine.Changed("tty") {
		tc.Serial.Port = *tty
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	log.Logger = app.NewLogger(os.Stdout, cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *tc, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("tail stopped")
	}
}

func run(ctx context.Context, tc config.Tail, logger zerolog.Logger) error {
	pal, err := palette.Parse(tc.Palette)
	if err != nil {
		return err
	}
	elems, err := comet.New(tc.Length, tc.Trail)
	if err != nil {
		return err
	}

	k, err := strip.ParseKind(tc.Strip.Kind)
	if err != nil {
		return err
	}
	if k != strip.Console && k != strip.Simulated {
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("host init: %w", err)
		}
	}
	drv, closeStrip, err := strip.Open(strip.Options{
		Kind:      k,
		NumPixels: tc.Length,
		Port:      tc.Strip.Port,
		Freq:      physic.Frequency(tc.Strip.FreqKHz) * physic.KiloHertz,
		Intensity: tc.Strip.Intensity,
	})
	if err != nil {
		return err
	}
	defer closeStrip()

	poll := func() (byte, bool) { return 0, false }
	if tc.Serial.Port != "" {
		port, err := control.OpenSerial(tc.Serial.Port, tc.Serial.Baud)
		if err != nil {
			return err
		}
		defer port.Close()
		poll = control.NewPoller(ctx, port).Poll
	}

	tail, err := app.NewTail(elems, drv, pal, app.TailOptions{
		Tick:   tc.Tick,
		MinGap: tc.MinGap,
		MaxGap: tc.MaxGap,
		Seed:   tc.Seed,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info().
		Str("strip", string(k)).
		Int("length", tc.Length).
		Int("trail", tc.Trail).
		Dur("tick", tc.Tick).
		Str("tty", tc.Serial.Port).
		Msg("tail running")
	return tail.Run(ctx, poll)
}
