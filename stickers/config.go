package stickers

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the optional TOML configuration of the renamer:
//
//	root = "public/stickers"
//
//	[[category]]
//	name = "arrows"
//	prefix = "arrow"
//	order = "natural"
//	rename = true
type Config struct {
	Root       string           `toml:"root"`
	Categories []CategoryConfig `toml:"category"`
}

type CategoryConfig struct {
	Name   string `toml:"name"`
	Prefix string `toml:"prefix"`
	Order  string `toml:"order"`
	Rename bool   `toml:"rename"`
}

// LoadConfig reads a TOML config. Without categories the defaults are used.
func LoadConfig(path string) (string, []Category, error) {
	var conf Config
	_, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return "", nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cats, err := conf.categories()
	if err != nil {
		return "", nil, fmt.Errorf("config %s: %w", path, err)
	}
	return conf.Root, cats, nil
}

func (c Config) categories() ([]Category, error) {
	if len(c.Categories) == 0 {
		return DefaultCategories(), nil
	}
	cats := make([]Category, 0, len(c.Categories))
	for _, cc := range c.Categories {
		if cc.Name == "" || cc.Prefix == "" {
			return nil, fmt.Errorf("category needs name and prefix: %+v", cc)
		}
		o, ok := ParseOrder(cc.Order)
		if !ok {
			return nil, fmt.Errorf("category %s: unknown order %q", cc.Name, cc.Order)
		}
		cats = append(cats, Category{Name: cc.Name, Prefix: cc.Prefix, Order: o, Rename: cc.Rename})
	}
	return cats, nil
}
