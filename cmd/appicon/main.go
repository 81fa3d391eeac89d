package main

import (
	"github.com/szxp/iconkit"
	"github.com/szxp/iconkit/icnsenc"
	"github.com/szxp/iconkit/iconutil"

	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
)

// version will be set while building
var version string

// buildTime will be set while building
var buildTime string

const (
	envConfig   = "APPICON_CONFIG"
	envLogLevel = "APPICON_LOG_LEVEL"
)

var errUsage = errors.New("usage")

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "appicon",
		Output: os.Stdout,
		Level:  hclog.LevelFromString(getenv(envLogLevel, "INFO")),
	}).With("appVersion", version)

	logger.Debug("Build info", "time", buildTime)

	err := initialize(logger, os.Args[1:], os.Stdout)
	if errors.Is(err, errUsage) {
		return
	}
	if err != nil {
		logger.Error("Failed. Exit now", "err", err)
		os.Exit(1)
	}
	logger.Info("Exit normally")
}

type options struct {
	configPath string
	iconsDir   string
	tauriConf  string
	bundler    string
	diagnose   bool
	source     string
	ratio      string
}

func parseArgs(args []string, usage io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("appicon", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVar(&opts.configPath, "config", getenv(envConfig, ""), "TOML config file")
	fs.StringVar(&opts.iconsDir, "dir", "", "icons directory (overrides config)")
	fs.StringVar(&opts.tauriConf, "tauri", "", "tauri.conf.json path (overrides config)")
	fs.StringVar(&opts.bundler, "bundler", "", "icns bundler: auto, iconutil or go (overrides config)")
	fs.BoolVar(&opts.diagnose, "diagnose", false, "only diagnose existing icons")
	fs.Usage = func() { printUsage(usage, fs) }

	err := fs.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil, errUsage
	}
	if err != nil {
		return nil, err
	}
	if fs.NArg() < 1 && !opts.diagnose {
		printUsage(usage, fs)
		return nil, errUsage
	}
	if fs.NArg() > 0 {
		opts.source = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		opts.ratio = fs.Arg(1)
	}
	return opts, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  appicon [flags] <source image> [content ratio]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  appicon icon.png        # default ratio 0.8")
	fmt.Fprintln(w, "  appicon icon.png 0.75   # icon looks too big")
	fmt.Fprintln(w, "  appicon icon.png 0.85   # icon looks too small")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Artwork whose corners are opaque, or that fills 95% of its square,")
	fmt.Fprintln(w, "gets a rounded mask. Set auto_round = false in the config to keep it square.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
}

func loadConfig(opts *options) (iconkit.Config, error) {
	cfg, err := iconkit.LoadConfig(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.iconsDir != "" {
		cfg.IconsDir = opts.iconsDir
	}
	if opts.tauriConf != "" {
		cfg.TauriConfig = opts.tauriConf
	}
	if opts.bundler != "" {
		cfg.Bundler = opts.bundler
	}
	if opts.ratio != "" {
		r, err := strconv.ParseFloat(opts.ratio, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid content ratio %q: %w", opts.ratio, err)
		}
		cfg.TargetRatio = r
	}
	return cfg, cfg.Validate()
}

func initialize(logger hclog.Logger, args []string, usage io.Writer) error {
	opts, err := parseArgs(args, usage)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	diag := logger.Named("diagnose")
	diag.Info("Diagnosing current icons", "dir", cfg.IconsDir)
	iconkit.LogReports(diag, iconkit.Diagnose(cfg.IconsDir, cfg.DiagnoseFiles, cfg.AlphaThreshold))

	check, err := iconkit.CheckTauriConfig(cfg.TauriConfig)
	if err != nil {
		logger.Named("tauri").Error("Cannot verify tauri config", "error", err)
	} else {
		check.Log(logger.Named("tauri"))
	}

	if opts.diagnose {
		return nil
	}

	src, err := iconkit.LoadSource(opts.source, iconkit.DefaultCanvasSize)
	if err != nil {
		return fmt.Errorf("loading source: %w", err)
	}

	nconf := cfg.NormalizerConfig()
	nconf.Logger = logger.Named("normalize")
	normalizer, err := iconkit.NewNormalizer(nconf)
	if err != nil {
		return err
	}
	canvas, err := normalizer.Normalize(src)
	if err != nil {
		return err
	}

	exporter, err := iconkit.NewExporter(iconkit.ExporterConfig{
		Dir:            cfg.IconsDir,
		Bundler:        selectBundler(cfg.Bundler, logger),
		AlphaThreshold: cfg.AlphaThreshold,
		Logger:         logger.Named("export"),
	})
	if err != nil {
		return err
	}
	res, err := exporter.Export(canvas)
	if err != nil {
		return err
	}

	diag.Info("Diagnosing regenerated icons", "dir", cfg.IconsDir)
	iconkit.LogReports(diag, iconkit.Diagnose(cfg.IconsDir, cfg.DiagnoseFiles, cfg.AlphaThreshold))

	if res.BundleErr != nil {
		logger.Warn("Icons exported without icns", "iconset", res.IconsetDir)
	} else {
		logger.Info("Icons regenerated", "files", len(res.Files), "icns", res.ICNSPath)
	}
	logger.Info("Next: rebuild the app", "command", "npm run tauri build")
	logger.Info("Next: clear the icon cache", "command", "killall Dock && killall Finder")
	logger.Info("If the old icon persists, remove the build cache", "command", "rm -rf src-tauri/target")
	return nil
}

// selectBundler returns the bundler named by the config. "auto" prefers
// iconutil and falls back to the pure Go encoder.
func selectBundler(name string, logger hclog.Logger) iconkit.Bundler {
	switch name {
	case iconkit.BundlerIconutil:
		return &iconutil.Bundler{}
	case iconkit.BundlerGo:
		return &icnsenc.Bundler{}
	}
	if iconutil.Available() {
		logger.Debug("Using iconutil bundler")
		return &iconutil.Bundler{}
	}
	logger.Info("iconutil not on PATH, using Go icns encoder")
	return &icnsenc.Bundler{}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}
