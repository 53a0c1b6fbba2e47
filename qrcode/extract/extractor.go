// Package extract implements the Extractor (component M): building the
// 8-parameter projective transform from the located finder/alignment
// points to the ideal module grid, and sampling the binarized image
// through it to produce a module-level BitMatrix. The transform
// construction is the standard square-to-quadrilateral/quadrilateral-to-
// square composition described in spec.md §4.M (the technique ZXing's
// PerspectiveTransform uses); no retrieved example repo carries this
// specific routine, so it is written directly from that description.
package extract

import (
	"fmt"

	"github.com/jalphad/qrforge/qrcode/binarize"
	"github.com/jalphad/qrforge/qrcode/locate"
)

// transform is a 3x3 projective matrix, stored row-major with i implicitly
// normalised to 1 in the forward direction (ZXing's convention).
type transform struct {
	a, b, c float64
	d, e, f float64
	g, h, i float64
}

func (t transform) apply(x, y float64) (float64, float64) {
	denom := t.g*x + t.h*y + t.i
	return (t.a*x + t.b*y + t.c) / denom, (t.d*x + t.e*y + t.f) / denom
}

func (t transform) times(o transform) transform {
	return transform{
		a: t.a*o.a + t.b*o.d + t.c*o.g,
		b: t.a*o.b + t.b*o.e + t.c*o.h,
		c: t.a*o.c + t.b*o.f + t.c*o.i,
		d: t.d*o.a + t.e*o.d + t.f*o.g,
		e: t.d*o.b + t.e*o.e + t.f*o.h,
		f: t.d*o.c + t.e*o.f + t.f*o.i,
		g: t.g*o.a + t.h*o.d + t.i*o.g,
		h: t.g*o.b + t.h*o.e + t.i*o.h,
		i: t.g*o.c + t.h*o.f + t.i*o.i,
	}
}

// squareToQuad maps the unit square (0,0),(1,0),(1,1),(0,1) onto the given
// quadrilateral. Degenerates to a pure affine map when the destination is
// a parallelogram.
func squareToQuad(x0, y0, x1, y1, x2, y2, x3, y3 float64) transform {
	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3
	if dx3 == 0 && dy3 == 0 {
		return transform{
			a: x1 - x0, b: x2 - x1, c: x0,
			d: y1 - y0, e: y2 - y1, f: y0,
			g: 0, h: 0, i: 1,
		}
	}
	dx1 := x1 - x2
	dx2 := x3 - x2
	dy1 := y1 - y2
	dy2 := y3 - y2
	denom := dx1*dy2 - dx2*dy1
	gg := (dx3*dy2 - dx2*dy3) / denom
	hh := (dx1*dy3 - dx3*dy1) / denom
	return transform{
		a: x1 - x0 + gg*x1, b: x3 - x0 + hh*x3, c: x0,
		d: y1 - y0 + gg*y1, e: y3 - y0 + hh*y3, f: y0,
		g: gg, h: hh, i: 1,
	}
}

// adjoint computes the adjugate of t, proportional to its inverse; since
// the transforms used here are only ever applied up to scale, the adjugate
// serves directly as the inverse map.
func (t transform) adjoint() transform {
	return transform{
		a: t.e*t.i - t.f*t.h,
		b: t.c*t.h - t.b*t.i,
		c: t.b*t.f - t.c*t.e,
		d: t.f*t.g - t.d*t.i,
		e: t.a*t.i - t.c*t.g,
		f: t.c*t.d - t.a*t.f,
		g: t.d*t.h - t.e*t.g,
		h: t.b*t.g - t.a*t.h,
		i: t.a*t.e - t.b*t.d,
	}
}

func quadToSquare(x0, y0, x1, y1, x2, y2, x3, y3 float64) transform {
	return squareToQuad(x0, y0, x1, y1, x2, y2, x3, y3).adjoint()
}

// quadrilateralToQuadrilateral composes quadToSquare(source) with
// squareToQuad(dest), i.e. M = sToQ . qToS, mapping source-quad
// coordinates to dest-quad coordinates.
func quadrilateralToQuadrilateral(
	x0, y0, x1, y1, x2, y2, x3, y3 float64,
	X0, Y0, X1, Y1, X2, Y2, X3, Y3 float64,
) transform {
	qToS := quadToSquare(x0, y0, x1, y1, x2, y2, x3, y3)
	sToQ := squareToQuad(X0, Y0, X1, Y1, X2, Y2, X3, Y3)
	return sToQ.times(qToS)
}

// Extract samples img at the module grid implied by res, returning a
// BitMatrix of dimension res.Dimension x res.Dimension.
func Extract(img *binarize.BitMatrix, res locate.Result) (*binarize.BitMatrix, error) {
	d := float64(res.Dimension)
	if res.Dimension <= 0 {
		return nil, fmt.Errorf("extract: non-positive dimension %d", res.Dimension)
	}

	t := quadrilateralToQuadrilateral(
		3.5, 3.5,
		d-3.5, 3.5,
		d-6.5, d-6.5,
		3.5, d-3.5,

		res.TopLeft.X, res.TopLeft.Y,
		res.TopRight.X, res.TopRight.Y,
		res.Alignment.X, res.Alignment.Y,
		res.BottomLeft.X, res.BottomLeft.Y,
	)

	out := binarize.NewBitMatrix(res.Dimension, res.Dimension)
	for y := 0; y < res.Dimension; y++ {
		for x := 0; x < res.Dimension; x++ {
			sx, sy := t.apply(float64(x)+0.5, float64(y)+0.5)
			ix, iy := int(sx), int(sy)
			if sx < 0 {
				ix = int(sx) - 1
			}
			if sy < 0 {
				iy = int(sy) - 1
			}
			if ix < 0 || iy < 0 || ix >= img.Width || iy >= img.Height {
				continue
			}
			out.Set(x, y, img.Get(ix, iy))
		}
	}
	return out, nil
}
