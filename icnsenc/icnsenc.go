// Package icnsenc packages iconsets into ICNS containers without the macOS
// toolchain.
package icnsenc

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jackmordaunt/icns/v3"
)

// DefaultSource is the largest member of a complete iconset.
const DefaultSource = "icon_512x512@2x.png"

// Bundler encodes the largest iconset rendition with the icns library, which
// derives every smaller container entry from it.
type Bundler struct {
	// Source names the iconset member to encode. Defaults to DefaultSource.
	Source string
}

func (b *Bundler) Bundle(iconsetDir, icnsPath string) error {
	name := b.Source
	if name == "" {
		name = DefaultSource
	}
	src := filepath.Join(iconsetDir, name)
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	out, err := os.Create(icnsPath)
	if err != nil {
		return err
	}
	err = icns.NewEncoder(out).WithAlgorithm(icns.Lanczos3).Encode(img)
	if err != nil {
		out.Close()
		os.Remove(icnsPath)
		return fmt.Errorf("encode icns: %w", err)
	}
	return out.Close()
}
