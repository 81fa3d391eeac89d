package iconkit

import (
	"image"
	"image/color"
	"testing"
)

func TestAnalyzeOpaque(t *testing.T) {
	a := Analyze(solid(100, 100, opaqueRed), DefaultAlphaThreshold)
	if !a.HasAlpha || a.Empty {
		t.Fatalf("unexpected analysis: %+v", a)
	}
	if a.Corners != [4]uint8{255, 255, 255, 255} {
		t.Errorf("corners = %v", a.Corners)
	}
	if !a.OpaqueCorners() {
		t.Error("OpaqueCorners = false")
	}
	if a.Ratio != 1 || !a.Oversized() {
		t.Errorf("ratio = %v, oversized = %v", a.Ratio, a.Oversized())
	}
	if a.Model != "NRGBA" {
		t.Errorf("model = %q", a.Model)
	}
}

func TestAnalyzeBoundingBox(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 20; y < 50; y++ {
		for x := 10; x < 60; x++ {
			img.SetNRGBA(x, y, opaqueRed)
		}
	}
	// At the threshold, not above it.
	img.SetNRGBA(90, 90, color.NRGBA{A: DefaultAlphaThreshold})

	a := Analyze(img, DefaultAlphaThreshold)
	if want := image.Rect(10, 20, 60, 50); a.BBox != want {
		t.Errorf("bbox = %v, want %v", a.BBox, want)
	}
	if a.Ratio != 0.5 {
		t.Errorf("ratio = %v, want 0.5", a.Ratio)
	}
	if a.OpaqueCorners() || a.Oversized() {
		t.Errorf("unexpected warnings: %+v", a)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	a := Analyze(image.NewNRGBA(image.Rect(0, 0, 10, 10)), DefaultAlphaThreshold)
	if !a.Empty {
		t.Error("Empty = false for transparent image")
	}
	if a.Oversized() {
		t.Error("empty image reported oversized")
	}
}

func TestAnalyzeNoAlpha(t *testing.T) {
	a := Analyze(image.NewGray(image.Rect(0, 0, 10, 10)), DefaultAlphaThreshold)
	if a.HasAlpha {
		t.Error("gray image reported alpha")
	}
	if !a.OpaqueCorners() {
		t.Error("image without alpha must have opaque corners")
	}
	if a.Model != "Gray" {
		t.Errorf("model = %q", a.Model)
	}
}

func TestAnalyzeRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.SetRGBA(9, 9, color.RGBA{A: 255})
	a := Analyze(img, DefaultAlphaThreshold)
	if a.Corners != [4]uint8{0, 0, 0, 255} {
		t.Errorf("corners = %v", a.Corners)
	}
	if a.BBox != image.Rect(9, 9, 10, 10) {
		t.Errorf("bbox = %v", a.BBox)
	}
}
