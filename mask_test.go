package iconkit

import (
	"image"
	"testing"
)

func TestRoundedMaskCorners(t *testing.T) {
	m := RoundedMask(200, DefaultCornerRadiusRatio)
	if m.Bounds() != image.Rect(0, 0, 200, 200) {
		t.Fatalf("bounds = %v", m.Bounds())
	}
	for _, p := range []image.Point{{0, 0}, {199, 0}, {0, 199}, {199, 199}} {
		if got := m.AlphaAt(p.X, p.Y).A; got != 0 {
			t.Errorf("corner %v = %d, want 0", p, got)
		}
	}
	for _, p := range []image.Point{{100, 100}, {100, 0}, {0, 100}, {199, 100}, {100, 199}} {
		if got := m.AlphaAt(p.X, p.Y).A; got < 250 {
			t.Errorf("inside %v = %d, want opaque", p, got)
		}
	}
}

func TestRoundedMaskSymmetric(t *testing.T) {
	tests := []struct {
		size  int
		ratio float64
	}{
		{128, 0.3},
		{200, DefaultCornerRadiusRatio},
		{819, DefaultCornerRadiusRatio},
		{7, 0.5},
	}
	for _, tt := range tests {
		m := RoundedMask(tt.size, tt.ratio)
		n := tt.size - 1
		for y := 0; y < tt.size; y++ {
			for x := 0; x < tt.size; x++ {
				a := m.AlphaAt(x, y).A
				for _, p := range []image.Point{{n - x, y}, {x, n - y}, {n - x, n - y}} {
					if b := m.AlphaAt(p.X, p.Y).A; a != b {
						t.Fatalf("size %d: (%d,%d)=%d but %v=%d", tt.size, x, y, a, p, b)
					}
				}
			}
		}
	}
}

func TestRoundedMaskZeroRadius(t *testing.T) {
	m := RoundedMask(64, 0)
	if got := m.AlphaAt(0, 0).A; got < 250 {
		t.Errorf("corner = %d, want opaque square", got)
	}
}

func TestApplyMask(t *testing.T) {
	img := solid(4, 4, opaqueRed)
	img.Pix[3] = 200
	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}
	mask.Pix[0] = 128
	mask.Pix[5] = 0

	ApplyMask(img, mask)

	if got := alpha(img, 0, 0); got != 100 {
		t.Errorf("alpha(0,0) = %d, want 200*128/255 = 100", got)
	}
	if got := alpha(img, 1, 1); got != 0 {
		t.Errorf("alpha(1,1) = %d, want 0", got)
	}
	if got := alpha(img, 3, 3); got != 255 {
		t.Errorf("alpha(3,3) = %d, want 255", got)
	}
	if c := img.NRGBAAt(0, 0); c.R != 255 {
		t.Errorf("color changed: %+v", c)
	}
}
