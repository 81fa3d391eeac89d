package iconkit

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// TauriICNSEntry is the icon entry macOS bundling needs in tauri.conf.json.
const TauriICNSEntry = "icons/icon.icns"

type tauriBundle struct {
	Icon []string `json:"icon"`
}

type tauriConf struct {
	// Tauri 1.x nests the bundle section under "tauri".
	Tauri struct {
		Bundle tauriBundle `json:"bundle"`
	} `json:"tauri"`
	Bundle tauriBundle `json:"bundle"`
}

type TauriCheck struct {
	Path  string
	Icons []string

	// NonStandard lists .icns entries not named icon.icns.
	NonStandard []string
	HasICNS     bool
}

// CheckTauriConfig reads the bundle icon list of a Tauri config file and
// checks that it references icons/icon.icns.
func CheckTauriConfig(path string) (*TauriCheck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tauri config: %w", err)
	}
	var conf tauriConf
	err = json.Unmarshal(data, &conf)
	if err != nil {
		return nil, fmt.Errorf("parsing tauri config %s: %w", path, err)
	}

	c := &TauriCheck{Path: path, Icons: conf.Tauri.Bundle.Icon}
	if len(c.Icons) == 0 {
		c.Icons = conf.Bundle.Icon
	}
	for _, icon := range c.Icons {
		if strings.HasSuffix(icon, ".icns") && !strings.Contains(icon, ICNSFileName) {
			c.NonStandard = append(c.NonStandard, icon)
		}
		if icon == TauriICNSEntry {
			c.HasICNS = true
		}
	}
	return c, nil
}

func (c *TauriCheck) Log(logger hclog.Logger) {
	logger.Info("Configured icons", "path", c.Path, "count", len(c.Icons))
	for _, icon := range c.Icons {
		logger.Info("Icon entry", "icon", icon)
	}
	for _, icon := range c.NonStandard {
		logger.Warn("Non-standard icns name", "icon", icon)
	}
	if c.HasICNS {
		logger.Info("Config includes icns", "entry", TauriICNSEntry)
	} else {
		logger.Error("Config is missing icns entry", "entry", TauriICNSEntry)
	}
}
