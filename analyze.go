package iconkit

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hashicorp/go-hclog"
)

// OversizedRatio is the bounding-box ratio at which artwork starts to look
// larger than neighbouring app icons.
const OversizedRatio = 0.90

// Analysis describes the alpha layout of an icon image.
type Analysis struct {
	Width    int
	Height   int
	Model    string
	HasAlpha bool

	// Corners holds the alpha of the top-left, top-right, bottom-left and
	// bottom-right pixels.
	Corners [4]uint8

	// BBox bounds the pixels whose alpha exceeds the threshold.
	BBox  image.Rectangle
	Ratio float64
	Empty bool
}

// Analyze inspects the corners and visible content bounds of img. Pixels
// with alpha strictly greater than alphaThreshold count as content.
func Analyze(img image.Image, alphaThreshold uint8) Analysis {
	b := img.Bounds()
	a := Analysis{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Model:    modelName(img),
		HasAlpha: hasAlpha(img),
	}
	if !a.HasAlpha || b.Empty() {
		return a
	}

	a.Corners = [4]uint8{
		alphaAt(img, b.Min.X, b.Min.Y),
		alphaAt(img, b.Max.X-1, b.Min.Y),
		alphaAt(img, b.Min.X, b.Max.Y-1),
		alphaAt(img, b.Max.X-1, b.Max.Y-1),
	}

	bbox, ok := alphaBounds(img, alphaThreshold)
	if !ok {
		a.Empty = true
		return a
	}
	a.BBox = bbox
	a.Ratio = float64(max(bbox.Dx(), bbox.Dy())) / float64(a.Width)
	return a
}

// OpaqueCorners reports whether none of the corners is fully transparent,
// which makes the icon render as a hard square.
func (a Analysis) OpaqueCorners() bool {
	if !a.HasAlpha {
		return true
	}
	for _, v := range a.Corners {
		if v == 0 {
			return false
		}
	}
	return true
}

func (a Analysis) Oversized() bool {
	return !a.Empty && a.Ratio >= OversizedRatio
}

func (a Analysis) Log(logger hclog.Logger, label string) {
	logger.Info("Transparency", "label", label, "size", fmt.Sprintf("%dx%d", a.Width, a.Height), "model", a.Model, "alpha", a.HasAlpha)
	if !a.HasAlpha {
		logger.Info("No alpha channel, corners cannot be transparent", "label", label)
		return
	}
	if a.Empty {
		logger.Warn("No visible content detected", "label", label)
		return
	}
	logger.Info("Content bounds", "label", label, "corners", a.Corners, "bbox", a.BBox.String(), "ratio", fmt.Sprintf("%.2f", a.Ratio))
	if a.OpaqueCorners() {
		logger.Warn("Corners are not transparent, icon will show square corners", "label", label)
	}
	if a.Oversized() {
		logger.Warn("Content ratio is large, icon will look bigger than other apps", "label", label, "ratio", fmt.Sprintf("%.2f", a.Ratio))
	}
}

func alphaAt(img image.Image, x, y int) uint8 {
	if n, ok := img.(*image.NRGBA); ok {
		return n.Pix[n.PixOffset(x, y)+3]
	}
	_, _, _, a := img.At(x, y).RGBA()
	return uint8(a >> 8)
}

func alphaBounds(img image.Image, threshold uint8) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if alphaAt(img, x, y) <= threshold {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

func hasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16, *image.YCbCr, *image.CMYK:
		return false
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}
	return true
}

func modelName(img image.Image) string {
	if _, ok := img.(*image.Paletted); ok {
		return "Paletted"
	}
	switch img.ColorModel() {
	case color.RGBAModel:
		return "RGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBAModel:
		return "NRGBA"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.AlphaModel:
		return "Alpha"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.YCbCrModel:
		return "YCbCr"
	case color.CMYKModel:
		return "CMYK"
	}
	return fmt.Sprintf("%T", img.ColorModel())
}
