package control

import (
	"fmt"
	"io"

	serial "github.com/tarm/goserial"
)

const DefaultBaud = 9600

// OpenSerial opens a serial device at baud, 8N1.
func OpenSerial(name string, baud int) (io.ReadWriteCloser, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	p, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	return p, nil
}
