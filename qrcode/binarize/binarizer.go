// Package binarize implements the Binarizer (component K): converting an
// RGBA pixel buffer into a binary BitMatrix via region-adaptive
// thresholding, per spec.md §4.K. No third-party imaging library in the
// retrieved examples implements this specific region-adaptive algorithm
// (a relative of ZXing's HybridBinarizer), so it is built directly on the
// standard image package, the same way the render package consumes
// image.RGBA/image.Paletted.
package binarize

import (
	"fmt"
	"image"
)

const regionSize = 8

// BitMatrix is a dense width x height grid of dark/light pixels.
type BitMatrix struct {
	Width, Height int
	bits          []bool
}

// NewBitMatrix allocates an all-light matrix of the given dimensions.
func NewBitMatrix(width, height int) *BitMatrix {
	return &BitMatrix{Width: width, Height: height, bits: make([]bool, width*height)}
}

func (m *BitMatrix) Get(x, y int) bool { return m.bits[y*m.Width+x] }
func (m *BitMatrix) Set(x, y int, v bool) {
	m.bits[y*m.Width+x] = v
}

// Inverted returns a copy with every pixel flipped, used when the decoder
// pipeline is configured to also attempt an inverted read.
func (m *BitMatrix) Inverted() *BitMatrix {
	out := NewBitMatrix(m.Width, m.Height)
	for i, v := range m.bits {
		out.bits[i] = !v
	}
	return out
}

// luminance converts one RGBA pixel to greyscale via Rec. 709 coefficients.
func luminance(img *image.RGBA, x, y int) float64 {
	r, g, b, _ := img.At(x, y).RGBA()
	// img.At returns 16-bit-scaled components; reduce to 8-bit range.
	rf := float64(r >> 8)
	gf := float64(g >> 8)
	bf := float64(b >> 8)
	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// Binarize converts img to a BitMatrix using 8x8 region-adaptive
// thresholding. A pixel is dark iff its luminance is <= the threshold of
// the 5x5 neighbourhood of regions its own region sits in.
func Binarize(img *image.RGBA) (*BitMatrix, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < regionSize || height < regionSize {
		return nil, fmt.Errorf("binarize: image %dx%d smaller than one region", width, height)
	}

	regionsX := (width + regionSize - 1) / regionSize
	regionsY := (height + regionSize - 1) / regionSize

	lum := make([][]float64, height)
	for y := range lum {
		lum[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			lum[y][x] = luminance(img, bounds.Min.X+x, bounds.Min.Y+y)
		}
	}

	mean := make([][]float64, regionsY)
	raw := make([][]float64, regionsY)
	uniform := make([][]bool, regionsY)
	for vr := range mean {
		mean[vr] = make([]float64, regionsX)
		raw[vr] = make([]float64, regionsX)
		uniform[vr] = make([]bool, regionsX)
	}

	for vr := 0; vr < regionsY; vr++ {
		for hr := 0; hr < regionsX; hr++ {
			sum, count := 0.0, 0
			min, max := 255.0, 0.0
			forEachPixelInRegion(hr, vr, width, height, func(x, y int) {
				v := lum[y][x]
				sum += v
				count++
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			})
			meanVal := sum / float64(count)
			mean[vr][hr] = meanVal
			if max-min <= 24 {
				raw[vr][hr] = min / 2
				uniform[vr][hr] = true
			} else {
				raw[vr][hr] = meanVal
			}
		}
	}

	corrected := make([][]float64, regionsY)
	for vr := 0; vr < regionsY; vr++ {
		corrected[vr] = make([]float64, regionsX)
		for hr := 0; hr < regionsX; hr++ {
			corrected[vr][hr] = raw[vr][hr]
			if uniform[vr][hr] {
				corrected[vr][hr] = correctedThreshold(mean, raw, hr, vr, regionsX, regionsY)
			}
		}
	}

	final := make([][]float64, regionsY)
	for vr := 0; vr < regionsY; vr++ {
		final[vr] = make([]float64, regionsX)
		for hr := 0; hr < regionsX; hr++ {
			final[vr][hr] = smoothedThreshold(corrected, hr, vr, regionsX, regionsY)
		}
	}

	out := NewBitMatrix(width, height)
	for y := 0; y < height; y++ {
		vr := y / regionSize
		for x := 0; x < width; x++ {
			hr := x / regionSize
			out.Set(x, y, lum[y][x] <= final[vr][hr])
		}
	}
	return out, nil
}

func forEachPixelInRegion(hr, vr, width, height int, f func(x, y int)) {
	x0, y0 := hr*regionSize, vr*regionSize
	x1, y1 := x0+regionSize, y0+regionSize
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			f(x, y)
		}
	}
}

// correctedThreshold applies the blank-region correction: if the block
// above has a higher mean than this region's own raw threshold, use the
// average of the upper, upper-left, and twice the left region's thresholds
// instead of the local min/2 fallback.
func correctedThreshold(mean, raw [][]float64, hr, vr, regionsX, regionsY int) float64 {
	if vr == 0 || mean[vr-1][hr] <= raw[vr][hr] {
		return raw[vr][hr]
	}
	upper := raw[vr-1][hr]
	left := raw[vr][hr]
	upperLeft := upper
	if hr > 0 {
		left = raw[vr][hr-1]
		upperLeft = raw[vr-1][hr-1]
	}
	return (upper + upperLeft + 2*left) / 4
}

// smoothedThreshold averages the 5x5 window of regions centred at
// (clamp(hr,2,regionsX-3), clamp(vr,2,regionsY-3)).
func smoothedThreshold(corrected [][]float64, hr, vr, regionsX, regionsY int) float64 {
	centerX := clamp(hr, 2, regionsX-3)
	centerY := clamp(vr, 2, regionsY-3)

	sum := 0.0
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			x := clamp(centerX+dx, 0, regionsX-1)
			y := clamp(centerY+dy, 0, regionsY-1)
			sum += corrected[y][x]
		}
	}
	return sum / 25
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
