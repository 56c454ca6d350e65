//go:build !linux

package hub75

import "fmt"

type LineOffsets struct {
	Chip    string
	Port    [7]int
	Address [4]int
	Latch   int
	OE      int
}

func OpenLines(o LineOffsets) (Lines, func() error, error) {
	return Lines{}, nil, fmt.Errorf("gpio character device not supported on this platform")
}
