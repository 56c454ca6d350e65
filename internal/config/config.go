package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Serial struct {
	Port string `yaml:"port"` // e.g. /dev/ttyUSB0, empty for none
	Baud int    `yaml:"baud"`
}

// Pins names the connector pins for the periph backend.
type Pins struct {
	R1, G1, B1 string
	R2, G2, B2 string
	CLK        string
	A, B, C, D string
	LAT, OE    string
}

// Lines places the connector on a gpiochip for the cdev backend.
type Lines struct {
	Chip       string `yaml:"chip"`
	R1, G1, B1 int
	R2, G2, B2 int
	CLK        int
	A, B, C, D int
	LAT, OE    int
}

type Display struct {
	Backend string `yaml:"backend"` // "periph" | "cdev" | "sim"
	Scan    string `yaml:"scan"`    // "blocking" | "pulsed"

	Unit       time.Duration `yaml:"unit"`
	RowGap     time.Duration `yaml:"row_gap"`
	SkipPlanes int           `yaml:"skip_planes"`

	TimerPeriod uint16        `yaml:"timer_period"`
	TimerTick   time.Duration `yaml:"timer_tick"`

	Pins  Pins  `yaml:"pins"`
	Lines Lines `yaml:"lines"`

	// Images maps image indices to BMP files replacing the presets.
	Images map[int]string `yaml:"images,omitempty"`

	DemoLevels []uint16      `yaml:"demo_levels"`
	DemoDelay  time.Duration `yaml:"demo_delay"`

	Serial Serial `yaml:"serial"`
}

type Strip struct {
	Kind      string `yaml:"kind"` // "ws2812" | "sk6812w" | "apa102" | "console" | "sim"
	Port      string `yaml:"port"` // spireg name, e.g. /dev/spidev0.0
	FreqKHz   int    `yaml:"freq_khz"`
	Intensity uint8  `yaml:"intensity"`
}

type Tail struct {
	Length  int           `yaml:"length"`
	Trail   int           `yaml:"trail"`
	Tick    time.Duration `yaml:"tick"`
	MinGap  int           `yaml:"min_gap"`
	MaxGap  int           `yaml:"max_gap"`
	Seed    uint64        `yaml:"seed"`
	Palette []string      `yaml:"palette"`

	Strip  Strip  `yaml:"strip"`
	Serial Serial `yaml:"serial"`
}

type Host struct {
	Count       int           `yaml:"count"`
	Unit        time.Duration `yaml:"unit"`
	AllowRepeat bool          `yaml:"allow_repeat"`
	Seed        uint64        `yaml:"seed"`

	Serial Serial `yaml:"serial"`
}

type Config struct {
	LogLevel string `yaml:"log_level"`

	Display Display `yaml:"display"`
	Tail    Tail    `yaml:"tail"`
	Host    Host    `yaml:"host"`
}

// Default returns the settings of the original boards, wired to the
// Raspberry Pi header.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Display: Display{
			Backend:     "sim",
			Scan:        "blocking",
			Unit:        time.Microsecond,
			RowGap:      100 * time.Microsecond,
			TimerPeriod: 300,
			TimerTick:   time.Microsecond,
			Pins: Pins{
				R1: "GPIO5", G1: "GPIO13", B1: "GPIO6",
				R2: "GPIO12", G2: "GPIO16", B2: "GPIO23",
				CLK: "GPIO17",
				A:   "GPIO22", B: "GPIO26", C: "GPIO27", D: "GPIO20",
				LAT: "GPIO21", OE: "GPIO4",
			},
			Lines: Lines{
				Chip: "gpiochip0",
				R1:   5, G1: 13, B1: 6,
				R2: 12, G2: 16, B2: 23,
				CLK: 17,
				A:   22, B: 26, C: 27, D: 20,
				LAT: 21, OE: 4,
			},
			DemoLevels: []uint16{32, 64, 128, 192, 256},
			DemoDelay:  time.Second,
			Serial:     Serial{Baud: 9600},
		},
		Tail: Tail{
			Length: 400,
			Trail:  15,
			Tick:   50 * time.Millisecond,
			MinGap: 10,
			MaxGap: 20,
			Palette: []string{
				"#f74c00", "#4352ff", "#d0d0cf", "#fe5000", "#00bb31",
			},
			Strip:  Strip{Kind: "sim", FreqKHz: 2500},
			Serial: Serial{Baud: 9600},
		},
		Host: Host{
			Count:  5,
			Unit:   200 * time.Millisecond,
			Serial: Serial{Baud: 9600},
		},
	}
}

// Load reads path over the defaults, so a file only needs the settings it
// changes.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (c *Config) Validate() error {
	switch c.Display.Backend {
	case "periph", "cdev", "sim":
	default:
		return fmt.Errorf("display.backend: unknown backend %q", c.Display.Backend)
	}
	switch c.Display.Scan {
	case "blocking", "pulsed":
	default:
		return fmt.Errorf("display.scan: unknown strategy %q", c.Display.Scan)
	}
	if c.Tail.MinGap < 1 || c.Tail.MaxGap <= c.Tail.MinGap {
		return fmt.Errorf("tail: gap range [%d, %d) is empty", c.Tail.MinGap, c.Tail.MaxGap)
	}
	if c.Tail.Tick <= 0 {
		return fmt.Errorf("tail.tick must be positive")
	}
	return nil
}
