// Package assets provides the preset images shown on the panel and turns
// images into pixel streams.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"io"
	"io/fs"
	"iter"
	"os"
	"path"
	"slices"

	"github.com/coreman2200/funtimes-c3leds/internal/pixel"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
)

const (
	Width  = 64
	Height = 32
)

//go:embed presets/*.svg
var presets embed.FS

// Set is an indexed list of images; index N is what serial byte N selects.
type Set struct {
	images []image.Image
	names  []string
}

// Presets rasterises the embedded images in file name order.
func Presets() (*Set, error) {
	names, err := fs.Glob(presets, "presets/*.svg")
	if err != nil {
		return nil, err
	}
	slices.Sort(names)

	s := &Set{}
	for _, name := range names {
		b, err := presets.ReadFile(name)
		if err != nil {
			return nil, err
		}
		img, err := Rasterize(bytes.NewReader(b), Width, Height)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		s.images = append(s.images, img)
		s.names = append(s.names, path.Base(name))
	}
	return s, nil
}

// Override replaces image i with a BMP file, or appends it when i equals
// Len.
func (s *Set) Override(i int, file string) error {
	if i < 0 || i > len(s.images) {
		return fmt.Errorf("image index %d out of range [0, %d]", i, len(s.images))
	}
	img, err := LoadBMP(file)
	if err != nil {
		return err
	}
	if i == len(s.images) {
		s.images = append(s.images, img)
		s.names = append(s.names, path.Base(file))
		return nil
	}
	s.images[i] = img
	s.names[i] = path.Base(file)
	return nil
}

func (s *Set) Len() int {
	return len(s.images)
}

func (s *Set) Image(i int) (image.Image, bool) {
	if i < 0 || i >= len(s.images) {
		return nil, false
	}
	return s.images[i], true
}

func (s *Set) Name(i int) string {
	if i < 0 || i >= len(s.names) {
		return ""
	}
	return s.names[i]
}

// Rasterize renders an SVG document scaled to w×h.
func Rasterize(r io.Reader, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

func LoadBMP(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}
	return img, nil
}

// Pixels yields every pixel of img, with the image's top left corner at
// (0, 0).
func Pixels(img image.Image) iter.Seq[pixel.Pixel] {
	return func(yield func(pixel.Pixel) bool) {
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				p := pixel.Pixel{
					Point: image.Pt(x-b.Min.X, y-b.Min.Y),
					Color: pixel.FromColor(img.At(x, y)),
				}
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Clip drops the pixels outside r.
func Clip(seq iter.Seq[pixel.Pixel], r image.Rectangle) iter.Seq[pixel.Pixel] {
	return func(yield func(pixel.Pixel) bool) {
		for p := range seq {
			if p.Point.In(r) && !yield(p) {
				return
			}
		}
	}
}
