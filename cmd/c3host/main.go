package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/coreman2200/funtimes-c3leds/internal/app"
	"github.com/coreman2200/funtimes-c3leds/internal/config"
	"github.com/coreman2200/funtimes-c3leds/internal/control"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "path to config.yaml")
		tty        = pflag.StringP("tty", "t", "", "serial port of the display or strip controller")
		baud       = pflag.Int("baud", control.DefaultBaud, "serial baud rate")
		count      = pflag.Int("count", control.DefaultImageCount, "number of distinct command bytes")
		legacy     = pflag.Bool("legacy", false, "old timing: 0.5-1s pauses, repeats allowed")
		seed       = pflag.Uint64("seed", 0, "random seed")
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

	h := &cfg.Host
	if pflag.CommandLine.Changed("tty") {
		h.Serial.Port = *tty
	}
	if pflag.CommandLine.Changed("baud") {
		h.Serial.Baud = *baud
	}
	if pflag.CommandLine.Changed("count") {
		h.Count = *count
	}
	if pflag.CommandLine.Changed("seed") {
		h.Seed = *seed
	}
	if *legacy {
		h.Unit = control.LegacyUnit
		h.AllowRepeat = true
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	log.Logger = app.NewLogger(os.Stdout, cfg.LogLevel)

	if h.Serial.Port == "" {
		log.Fatal().Msg("no serial port given, use --tty")
	}
	port, err := control.OpenSerial(h.Serial.Port, h.Serial.Baud)
	if err != nil {
		log.Fatal().Err(err).Msg("open serial port")
	}
	defer port.Close()

	sender, err := control.NewSender(port, control.SenderOptions{
		Count:       h.Count,
		Unit:        h.Unit,
		AllowRepeat: h.AllowRepeat,
		Seed:        h.Seed,
	}, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("sender")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Str("tty", h.Serial.Port).Int("count", h.Count).Dur("unit", h.Unit).Msg("sending")
	if err := sender.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("send failed")
	}
}
