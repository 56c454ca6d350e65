// Package control implements the single byte serial protocol between the
// host and the display and strip controllers.
package control

import "fmt"

const (
	// ClearByte blanks the panel.
	ClearByte byte = 0xFE
	// DemoByte shows image 0 at stepped brightness levels.
	DemoByte byte = 0xFD
)

type Op int

const (
	Ignore Op = iota
	ShowImage
	Clear
	BrightnessDemo
)

func (o Op) String() string {
	switch o {
	case ShowImage:
		return "show"
	case Clear:
		return "clear"
	case BrightnessDemo:
		return "demo"
	}
	return "ignore"
}

type Command struct {
	Op    Op
	Image int
}

func (c Command) String() string {
	if c.Op == ShowImage {
		return fmt.Sprintf("show(%d)", c.Image)
	}
	return c.Op.String()
}

// Decode maps a received byte onto a display command. Bytes below
// imageCount select a preset image.
func Decode(b byte, imageCount int) Command {
	switch {
	case int(b) < imageCount:
		return Command{Op: ShowImage, Image: int(b)}
	case b == ClearByte:
		return Command{Op: Clear}
	case b == DemoByte:
		return Command{Op: BrightnessDemo}
	}
	return Command{Op: Ignore}
}
