package iconkit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BundlerAuto     = "auto"
	BundlerIconutil = "iconutil"
	BundlerGo       = "go"
)

// Config holds the settings of the appicon tool. Paths are relative to the
// working directory unless absolute.
type Config struct {
	IconsDir          string   `toml:"icons_dir"`
	TauriConfig       string   `toml:"tauri_config"`
	TargetRatio       float64  `toml:"target_ratio"`
	CornerRadiusRatio float64  `toml:"corner_radius_ratio"`
	FillThreshold     float64  `toml:"fill_threshold"`
	AlphaThreshold    uint8    `toml:"alpha_threshold"`
	AutoRound         bool     `toml:"auto_round"`
	SubtleBackground  bool     `toml:"subtle_background"`
	Bundler           string   `toml:"bundler"`
	DiagnoseFiles     []string `toml:"diagnose_files"`
}

func DefaultConfig() Config {
	n := DefaultNormalizerConfig()
	return Config{
		IconsDir:          "src-tauri/icons",
		TauriConfig:       "src-tauri/tauri.conf.json",
		TargetRatio:       n.TargetRatio,
		CornerRadiusRatio: n.CornerRadiusRatio,
		FillThreshold:     n.FillThreshold,
		AlphaThreshold:    n.AlphaThreshold,
		AutoRound:         n.AutoRound,
		SubtleBackground:  n.SubtleBackground,
		Bundler:           BundlerAuto,
		DiagnoseFiles:     append([]string(nil), DefaultDiagnoseFiles...),
	}
}

// LoadConfig decodes a TOML file over DefaultConfig. An empty path yields the
// defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Bundler {
	case BundlerAuto, BundlerIconutil, BundlerGo:
	default:
		return fmt.Errorf("unknown bundler %q (want %s, %s or %s)", c.Bundler, BundlerAuto, BundlerIconutil, BundlerGo)
	}
	if c.IconsDir == "" {
		return fmt.Errorf("icons_dir is empty")
	}
	if !(c.TargetRatio > 0 && c.TargetRatio <= 1) {
		return fmt.Errorf("target_ratio must be in (0,1]: %v", c.TargetRatio)
	}
	if c.CornerRadiusRatio < 0 || c.CornerRadiusRatio > 0.5 {
		return fmt.Errorf("corner_radius_ratio must be in [0,0.5]: %v", c.CornerRadiusRatio)
	}
	if !(c.FillThreshold > 0 && c.FillThreshold <= 1) {
		return fmt.Errorf("fill_threshold must be in (0,1]: %v", c.FillThreshold)
	}
	return nil
}

// NormalizerConfig derives the normalizer settings from c.
func (c Config) NormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		CanvasSize:        DefaultCanvasSize,
		TargetRatio:       c.TargetRatio,
		CornerRadiusRatio: c.CornerRadiusRatio,
		FillThreshold:     c.FillThreshold,
		AlphaThreshold:    c.AlphaThreshold,
		AutoRound:         c.AutoRound,
		SubtleBackground:  c.SubtleBackground,
	}
}
