package iconkit

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-hclog"
	ico "github.com/sergeymakinen/go-ico"
)

const (
	IconsetDirName = "icon.iconset"
	ICNSFileName   = "icon.icns"
)

// Rendition is a single exported raster size.
type Rendition struct {
	Size int
	Name string
}

// TauriRenditions are the files a Tauri bundle config references directly.
var TauriRenditions = []Rendition{
	{32, "32x32.png"},
	{128, "128x128.png"},
	{256, "128x128@2x.png"},
	{1024, "icon.png"},
	{256, "icon.ico"},
}

// IconsetRenditions are the members of a macOS .iconset directory.
var IconsetRenditions = []Rendition{
	{16, "icon_16x16.png"},
	{32, "icon_16x16@2x.png"},
	{32, "icon_32x32.png"},
	{64, "icon_32x32@2x.png"},
	{128, "icon_128x128.png"},
	{256, "icon_128x128@2x.png"},
	{256, "icon_256x256.png"},
	{512, "icon_256x256@2x.png"},
	{512, "icon_512x512.png"},
	{1024, "icon_512x512@2x.png"},
}

type ExporterConfig struct {
	// Dir receives the exported icons.
	Dir string

	// Bundler packages the iconset. Packaging is skipped when nil.
	Bundler Bundler

	AlphaThreshold uint8
	Logger         hclog.Logger
}

type Exporter struct {
	conf *ExporterConfig
}

type ExportResult struct {
	Files      []string
	IconsetDir string
	ICNSPath   string

	// BundleErr is set when packaging failed. The iconset is kept so it can
	// be packaged by hand.
	BundleErr error
}

func NewExporter(conf ExporterConfig) (*Exporter, error) {
	if conf.Logger == nil {
		conf.Logger = hclog.NewNullLogger()
	}
	if conf.Dir == "" {
		return nil, fmt.Errorf("no export dir")
	}
	return &Exporter{conf: &conf}, nil
}

// Export writes every Tauri rendition and the iconset, then packages the
// iconset into icon.icns. Only write failures are returned as errors.
func (e *Exporter) Export(img image.Image) (*ExportResult, error) {
	logger := e.conf.Logger
	err := os.MkdirAll(e.conf.Dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("create icons dir: %w", err)
	}

	res := &ExportResult{}
	for _, r := range TauriRenditions {
		p := filepath.Join(e.conf.Dir, r.Name)
		resized, err := writeRendition(img, r, p)
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, p)
		logger.Info("Wrote icon", "file", r.Name, "size", r.Size)
		if strings.HasSuffix(r.Name, ".png") && r.Size >= 256 {
			Analyze(resized, e.conf.AlphaThreshold).Log(logger, r.Name)
		}
	}

	iconsetDir, err := e.WriteIconset(img)
	if err != nil {
		return res, err
	}
	res.IconsetDir = iconsetDir

	res.ICNSPath, res.BundleErr = e.BuildICNS(iconsetDir)
	return res, nil
}

// WriteIconset writes the iconset renditions into Dir/icon.iconset.
func (e *Exporter) WriteIconset(img image.Image) (string, error) {
	dir := filepath.Join(e.conf.Dir, IconsetDirName)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", fmt.Errorf("create iconset dir: %w", err)
	}
	for _, r := range IconsetRenditions {
		resized, err := writeRendition(img, r, filepath.Join(dir, r.Name))
		if err != nil {
			return dir, err
		}
		e.conf.Logger.Debug("Wrote iconset member", "file", r.Name, "size", r.Size)
		if r.Size >= 512 {
			Analyze(resized, e.conf.AlphaThreshold).Log(e.conf.Logger, IconsetDirName+"/"+r.Name)
		}
	}
	return dir, nil
}

// BuildICNS replaces Dir/icon.icns with a container built from iconsetDir.
// The iconset is removed after a successful build and kept otherwise.
func (e *Exporter) BuildICNS(iconsetDir string) (string, error) {
	logger := e.conf.Logger
	icnsPath := filepath.Join(e.conf.Dir, ICNSFileName)

	if e.conf.Bundler == nil {
		logger.Error("No icns bundler available", "manual", ManualBundleCommand(iconsetDir, icnsPath))
		return icnsPath, ErrNoBundler
	}

	err := os.Remove(icnsPath)
	if err != nil && !os.IsNotExist(err) {
		return icnsPath, fmt.Errorf("remove old icns: %w", err)
	}
	if err == nil {
		logger.Info("Removed old icns", "path", icnsPath)
	}

	err = e.conf.Bundler.Bundle(iconsetDir, icnsPath)
	if err != nil {
		logger.Error("Failed to build icns", "error", err)
		logger.Error("Run manually", "command", ManualBundleCommand(iconsetDir, icnsPath))
		return icnsPath, err
	}
	logger.Info("Built icns", "path", icnsPath)

	err = os.RemoveAll(iconsetDir)
	if err != nil {
		logger.Warn("Failed to remove iconset", "dir", iconsetDir, "error", err)
	}
	return icnsPath, nil
}

func writeRendition(img image.Image, r Rendition, path string) (*image.NRGBA, error) {
	resized := imaging.Resize(img, r.Size, r.Size, imaging.Lanczos)
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".ico") {
		err = ico.Encode(f, resized)
	} else {
		err = imaging.Encode(f, resized, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return resized, f.Close()
}
