package main

import (
	"github.com/szxp/iconkit/stickers"

	"flag"
	"os"

	"github.com/hashicorp/go-hclog"
)

// version will be set while building
var version string

const (
	envDir      = "STICKERS_DIR"
	envLogLevel = "STICKERS_LOG_LEVEL"
)

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "stickers",
		Output: os.Stdout,
		Level:  hclog.LevelFromString(getenv(envLogLevel, "INFO")),
	}).With("appVersion", version)

	configPath := flag.String("config", "", "TOML config with root and [[category]] tables")
	flag.Parse()

	err := initialize(logger, *configPath, flag.Arg(0))
	if err != nil {
		logger.Error("Failed. Exit now", "err", err)
		os.Exit(1)
	}
	logger.Info("Exit normally")
}

// initialize resolves the root from the argument, the config file, the
// environment and finally public/stickers, in that order.
func initialize(logger hclog.Logger, configPath, root string) error {
	categories := stickers.DefaultCategories()
	confRoot := ""
	if configPath != "" {
		var err error
		confRoot, categories, err = stickers.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	if root == "" {
		root = confRoot
	}
	if root == "" {
		root = getenv(envDir, "public/stickers")
	}

	r, err := stickers.NewRenamer(stickers.RenamerConfig{
		Root:   root,
		Logger: logger.Named("rename"),
	})
	if err != nil {
		return err
	}
	_, err = r.Run(categories)
	return err
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}
