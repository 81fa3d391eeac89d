package iconkit

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/webp"
)

// LoadSource reads the artwork at path. Raster formats are decoded with EXIF
// orientation applied; SVG documents are rasterized to fit a size×size square.
func LoadSource(path string, size int) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return loadSVG(path, size)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func loadSVG(path string, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid svg raster size: %d", size)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, fmt.Errorf("parse svg %s: %w", path, err)
	}

	// Fit the view box inside the square, keeping its aspect ratio.
	w, h := float64(size), float64(size)
	if vw, vh := icon.ViewBox.W, icon.ViewBox.H; vw > 0 && vh > 0 {
		scale := min(float64(size)/vw, float64(size)/vh)
		w, h = vw*scale, vh*scale
	}
	icon.SetTarget((float64(size)-w)/2, (float64(size)-h)/2, w, h)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img, nil
}
