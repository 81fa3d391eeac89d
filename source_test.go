package iconkit

import (
	"path/filepath"
	"testing"
)

func TestLoadSourcePNG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "icon.png")
	writePNG(t, p, solid(40, 30, opaqueRed))
	img, err := LoadSource(p, DefaultCanvasSize)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("bounds = %v", b)
	}
}

func TestLoadSourceSVG(t *testing.T) {
	p := writeFile(t, t.TempDir(), "icon.svg", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50">
<rect x="0" y="0" width="100" height="50" fill="#ff0000"/>
</svg>`)
	img, err := LoadSource(p, 200)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("bounds = %v, want 200x200", b)
	}
	// The 2:1 view box is letterboxed into rows 50..150.
	if _, _, _, a := img.At(100, 100).RGBA(); a>>8 < 200 {
		t.Errorf("center alpha = %d, want opaque", a>>8)
	}
	if _, _, _, a := img.At(100, 10).RGBA(); a != 0 {
		t.Errorf("letterbox alpha = %d, want 0", a>>8)
	}
}

func TestLoadSourceErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadSource(filepath.Join(dir, "missing.png"), DefaultCanvasSize); err == nil {
		t.Error("expected error for missing file")
	}
	p := writeFile(t, dir, "broken.png", "garbage")
	if _, err := LoadSource(p, DefaultCanvasSize); err == nil {
		t.Error("expected error for undecodable file")
	}
}
