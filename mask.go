package iconkit

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so each corner approximates a
// quarter circle.
const kappa = 0.5522847498

// RoundedMask returns a size×size alpha mask holding an anti-aliased rounded
// rectangle whose corner radius is floor(size*radiusRatio), capped at half
// the side. The mask is mirror-symmetric on both axes.
func RoundedMask(size int, radiusRatio float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	if size <= 0 {
		return mask
	}

	s := float32(size)
	r := float32(math.Floor(float64(size) * radiusRatio))
	if r < 0 {
		r = 0
	}
	if r > s/2 {
		r = s / 2
	}
	c := r * (1 - kappa)

	z := vector.NewRasterizer(size, size)
	z.MoveTo(r, 0)
	z.LineTo(s-r, 0)
	z.CubeTo(s-c, 0, s, c, s, r)
	z.LineTo(s, s-r)
	z.CubeTo(s, s-c, s-c, s, s-r, s)
	z.LineTo(r, s)
	z.CubeTo(c, s, 0, s-c, 0, s-r)
	z.LineTo(0, r)
	z.CubeTo(0, c, c, 0, r, 0)
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	mirrorQuadrant(mask, size)
	return mask
}

// mirrorQuadrant copies the top-left quadrant of a size×size mask onto the
// other three. The rasterizer shades mirrored corners slightly differently.
func mirrorQuadrant(mask *image.Alpha, size int) {
	q := (size + 1) / 2
	for y := 0; y < q; y++ {
		for x := 0; x < q; x++ {
			a := mask.Pix[mask.PixOffset(x, y)]
			mask.Pix[mask.PixOffset(size-1-x, y)] = a
			mask.Pix[mask.PixOffset(x, size-1-y)] = a
			mask.Pix[mask.PixOffset(size-1-x, size-1-y)] = a
		}
	}
}

// ApplyMask multiplies the alpha channel of img by mask, pixel by pixel.
// Both images are addressed from their own bounds' origin.
func ApplyMask(img *image.NRGBA, mask *image.Alpha) {
	b := img.Bounds().Intersect(mask.Bounds().Sub(mask.Bounds().Min).Add(img.Bounds().Min))
	mo := mask.Bounds().Min.Sub(img.Bounds().Min)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y) + 3
			m := mask.Pix[mask.PixOffset(x+mo.X, y+mo.Y)]
			img.Pix[i] = uint8(uint32(img.Pix[i]) * uint32(m) / 255)
		}
	}
}
