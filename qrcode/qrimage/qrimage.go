// Package qrimage is the RGBA pixel-buffer collaborator between a loaded
// image.Image and the decoder, and between an encoded matrix and a
// synthetic image.RGBA for round-trip use. It owns no QR semantics of its
// own; it exists so qrcode/decode's Binarizer input and cmd/qrforge's image
// loading share one conversion path, the way the teacher's
// qrcode/types/extractor.go converts a gozxing BinaryBitmap rather than
// repeating pixel-buffer plumbing at each call site.
package qrimage

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

// ToRGBA copies any image.Image into an *image.RGBA, the pixel format the
// Binarizer reads. Images that are already *image.RGBA are returned as-is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	return out
}

// Module is the minimal surface qrimage needs from a built matrix.
type Module interface {
	Size() int
	At(r, c int) bool
}

// Rasterize draws m into an *image.RGBA at scale pixels per module,
// framed by border light modules on every side. It mirrors
// qrcode/render.Raster's geometry but produces a full-color RGBA buffer
// instead of a paletted one, so it can round-trip straight back through
// the Binarizer/PatternLocator/Extractor chain in tests.
func Rasterize(m Module, scale, border int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	if border < 0 {
		border = 0
	}

	size := m.Size()
	dim := (size + 2*border) * scale
	img := image.NewRGBA(image.Rect(0, 0, dim, dim))
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			img.Set(x, y, white)
		}
	}

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if !m.At(r, c) {
				continue
			}
			startX := (c + border) * scale
			startY := (r + border) * scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.Set(startX+dx, startY+dy, black)
				}
			}
		}
	}
	return img
}
