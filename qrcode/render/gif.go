// Package render rasterizes a built matrix into a monochrome GIF, the way
// AshokShau-qrcode/writer.go rasterizes one into a PNG: a two-color
// image.Paletted scaled up by an integer module size, framed by a quiet
// zone, handed to the stdlib encoder.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
)

// ErrScale is returned when the requested module scale is not positive.
var ErrScale = errors.New("render: scale must be >= 1")

// QuietZone is the number of light modules of border added on every side,
// matching the standard's recommended minimum quiet zone of four modules.
const QuietZone = 4

var palette = color.Palette{color.White, color.Black}

// Module is the minimal surface render needs from a built matrix: its
// dimension and per-cell color.
type Module interface {
	Size() int
	At(r, c int) bool
}

// Raster converts m into a two-color image.Paletted, scale pixels per
// module, framed by QuietZone light modules on every side. Index 0 is
// white (light), index 1 is black (dark).
func Raster(m Module, scale int) (*image.Paletted, error) {
	if scale < 1 {
		return nil, ErrScale
	}

	size := m.Size()
	dim := (size + 2*QuietZone) * scale
	img := image.NewPaletted(image.Rect(0, 0, dim, dim), palette)
	for i := range img.Pix {
		img.Pix[i] = 0
	}

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if !m.At(r, c) {
				continue
			}
			startX := (c + QuietZone) * scale
			startY := (r + QuietZone) * scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetColorIndex(startX+dx, startY+dy, 1)
				}
			}
		}
	}
	return img, nil
}

// WriteGIF rasterizes m at the given module scale and writes it to w as a
// GIF, per spec.md's "render... produces a monochrome GIF" requirement.
func WriteGIF(w io.Writer, m Module, scale int) error {
	img, err := Raster(m, scale)
	if err != nil {
		return err
	}
	return gif.Encode(w, img, &gif.Options{NumColors: len(palette)})
}
