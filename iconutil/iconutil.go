package iconutil

import (
	"errors"
	"fmt"
	"os/exec"
)

const defaultBinary = "iconutil"

// ErrNotFound is returned when the iconutil binary is not on PATH.
var ErrNotFound = errors.New("iconutil not found")

// Bundler packages iconsets with the macOS iconutil command.
type Bundler struct {
	// Binary overrides the command name or path. Defaults to "iconutil".
	Binary string
}

func (b *Bundler) Bundle(iconsetDir, icnsPath string) error {
	bin, err := exec.LookPath(b.binary())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	args := []string{
		// convert the iconset into a container
		"-c", "icns",
		iconsetDir,
		"-o", icnsPath,
	}

	out, err := exec.Command(bin, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("iconutil: %w: %s", err, out)
	}
	return nil
}

func (b *Bundler) binary() string {
	if b.Binary == "" {
		return defaultBinary
	}
	return b.Binary
}

// Available reports whether iconutil can be found on PATH.
func Available() bool {
	_, err := exec.LookPath(defaultBinary)
	return err == nil
}
