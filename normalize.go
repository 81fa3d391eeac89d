package iconkit

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/draw"
)

const (
	DefaultCanvasSize        = 1024
	DefaultTargetRatio       = 0.8
	DefaultCornerRadiusRatio = 0.22
	DefaultFillThreshold     = 0.95
	DefaultAlphaThreshold    = 10
)

var subtleBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 3}

type NormalizerConfig struct {
	// Side of the square output canvas in pixels.
	CanvasSize int

	// Fraction of the canvas side taken by the artwork, in (0,1].
	TargetRatio float64

	// Corner radius of the rounding mask relative to the content side.
	CornerRadiusRatio float64

	// Content whose bounding box covers at least this fraction of the
	// content side is rounded even when its corners are transparent.
	FillThreshold float64

	// Alpha values above this count as visible content.
	AlphaThreshold uint8

	AutoRound        bool
	SubtleBackground bool

	Logger hclog.Logger
}

// DefaultNormalizerConfig returns the tuning that matches the macOS icon grid.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		CanvasSize:        DefaultCanvasSize,
		TargetRatio:       DefaultTargetRatio,
		CornerRadiusRatio: DefaultCornerRadiusRatio,
		FillThreshold:     DefaultFillThreshold,
		AlphaThreshold:    DefaultAlphaThreshold,
		AutoRound:         true,
	}
}

// Normalizer scales artwork onto a fixed canvas at a target content ratio,
// rounding its corners when the artwork fills its own square.
type Normalizer struct {
	conf *NormalizerConfig
}

func NewNormalizer(conf NormalizerConfig) (*Normalizer, error) {
	if conf.Logger == nil {
		conf.Logger = hclog.NewNullLogger()
	}
	if conf.CanvasSize == 0 {
		conf.CanvasSize = DefaultCanvasSize
	}
	if conf.CanvasSize < 0 {
		return nil, fmt.Errorf("invalid canvas size: %d", conf.CanvasSize)
	}
	if !(conf.TargetRatio > 0 && conf.TargetRatio <= 1) {
		return nil, fmt.Errorf("target ratio must be in (0,1]: %v", conf.TargetRatio)
	}
	if conf.CornerRadiusRatio < 0 || conf.CornerRadiusRatio > 0.5 {
		return nil, fmt.Errorf("corner radius ratio must be in [0,0.5]: %v", conf.CornerRadiusRatio)
	}
	if !(conf.FillThreshold > 0 && conf.FillThreshold <= 1) {
		return nil, fmt.Errorf("fill threshold must be in (0,1]: %v", conf.FillThreshold)
	}
	return &Normalizer{conf: &conf}, nil
}

// ContentSize returns the side of the content region for a canvas side and
// content ratio.
func ContentSize(canvas int, ratio float64) int {
	return max(1, int(math.Round(float64(canvas)*ratio)))
}

// SquareCrop crops img to its centered square. Square images are returned
// unchanged.
func SquareCrop(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() == b.Dy() {
		return img
	}
	s := min(b.Dx(), b.Dy())
	return imaging.CropCenter(img, s, s)
}

// NeedsRounding reports whether content already fills its square: either all
// four corners are non-transparent or the visible bounding box covers at least
// fillThreshold of the side. Fully transparent content counts as filled.
func NeedsRounding(content image.Image, alphaThreshold uint8, fillThreshold float64) bool {
	a := Analyze(content, alphaThreshold)
	if a.OpaqueCorners() || a.Empty {
		return true
	}
	return a.Ratio >= fillThreshold
}

// Normalize returns a CanvasSize×CanvasSize canvas holding src, center-cropped
// to a square, resized to the content size and centered.
func (n *Normalizer) Normalize(src image.Image) (*image.NRGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, fmt.Errorf("empty source image")
	}
	conf := n.conf
	logger := conf.Logger

	square := SquareCrop(src)
	logger.Debug("Source", "bounds", src.Bounds().String(), "square", square.Bounds().Dx())
	Analyze(square, conf.AlphaThreshold).Log(logger, "source")

	size := conf.CanvasSize
	content := ContentSize(size, conf.TargetRatio)
	resized := imaging.Resize(square, content, content, imaging.Lanczos)

	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	if conf.SubtleBackground {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(subtleBackground), image.Point{}, draw.Src)
	}

	if conf.AutoRound && NeedsRounding(resized, conf.AlphaThreshold, conf.FillThreshold) {
		ApplyMask(resized, RoundedMask(content, conf.CornerRadiusRatio))
		logger.Info("Applied rounded mask to content", "content", content, "radiusRatio", conf.CornerRadiusRatio)
	}

	off := (size - content) / 2
	dr := image.Rect(off, off, off+content, off+content)
	draw.Draw(canvas, dr, resized, resized.Bounds().Min, draw.Over)

	logger.Info("Normalized", "canvas", size, "content", content, "ratio", fmt.Sprintf("%.0f%%", conf.TargetRatio*100))
	Analyze(canvas, conf.AlphaThreshold).Log(logger, "normalized")
	return canvas, nil
}
