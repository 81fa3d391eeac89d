package iconkit

import (
	"errors"
	"fmt"
)

// ErrNoBundler is recorded when an export runs without a bundler.
var ErrNoBundler = errors.New("no icns bundler configured")

// Bundler packages an iconset directory into an ICNS container at icnsPath.
type Bundler interface {
	Bundle(iconsetDir, icnsPath string) error
}

// BundlerFunc adapts a plain function to the Bundler interface.
type BundlerFunc func(iconsetDir, icnsPath string) error

func (f BundlerFunc) Bundle(iconsetDir, icnsPath string) error {
	return f(iconsetDir, icnsPath)
}

// ManualBundleCommand returns the command an operator can run to package
// the iconset by hand on macOS.
func ManualBundleCommand(iconsetDir, icnsPath string) string {
	return fmt.Sprintf("iconutil -c icns %s -o %s", iconsetDir, icnsPath)
}
