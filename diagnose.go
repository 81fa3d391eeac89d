package iconkit

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/jackmordaunt/icns/v3"
)

// DefaultDiagnoseFiles are the icons macOS bundling depends on.
var DefaultDiagnoseFiles = []string{
	ICNSFileName,
	"icon.png",
	"128x128.png",
	"128x128@2x.png",
	"32x32.png",
}

var icnsMagic = []byte("icns")

// FileReport is the diagnosis of a single icon file.
type FileReport struct {
	Name    string
	Path    string
	Missing bool

	// Format is the detected container or codec name, e.g. "icns" or "png".
	Format string
	Width  int
	Height int
	Model  string

	// FakeICNS is set for a .icns file that is not an ICNS container.
	FakeICNS   bool
	Renditions []string

	Analysis *Analysis
	Err      error
}

// Diagnose inspects files under dir. It never modifies anything.
func Diagnose(dir string, files []string, alphaThreshold uint8) []FileReport {
	reports := make([]FileReport, 0, len(files))
	for _, name := range files {
		reports = append(reports, diagnoseFile(filepath.Join(dir, name), name, alphaThreshold))
	}
	return reports
}

func diagnoseFile(path, name string, alphaThreshold uint8) FileReport {
	r := FileReport{Name: name, Path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		r.Missing = true
		return r
	}
	if err != nil {
		r.Err = err
		return r
	}

	if strings.EqualFold(filepath.Ext(name), ".icns") {
		if bytes.HasPrefix(data, icnsMagic) {
			r.Format = "icns"
			descs, err := probeICNS(data)
			if err != nil {
				r.Err = err
				return r
			}
			for _, d := range descs {
				r.Renditions = append(r.Renditions, d.String())
			}
			return r
		}
		r.FakeICNS = true
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			r.Format = "unknown"
			r.Err = err
			return r
		}
		r.Format, r.Width, r.Height = format, cfg.Width, cfg.Height
		return r
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		r.Err = err
		return r
	}
	a := Analyze(img, alphaThreshold)
	r.Format = format
	r.Width, r.Height = a.Width, a.Height
	r.Model = a.Model
	r.Analysis = &a
	return r
}

// probeICNS lists the renditions in an ICNS container. The decoder indexes
// into the data without bounds checks, so truncated files are recovered.
func probeICNS(data []byte) (descs []icns.IconDescription, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed icns: %v", p)
		}
	}()
	if len(data) < 8 {
		return nil, fmt.Errorf("malformed icns: %d bytes", len(data))
	}
	return icns.Probe(bytes.NewReader(data))
}

// Healthy reports whether the file exists and is in the format its name
// promises.
func (r FileReport) Healthy() bool {
	return !r.Missing && !r.FakeICNS && r.Err == nil
}

func LogReports(logger hclog.Logger, reports []FileReport) {
	for _, r := range reports {
		switch {
		case r.Missing:
			logger.Error("Missing icon", "file", r.Name)
		case r.FakeICNS:
			logger.Error("Fake icns, macOS will not recognise this icon", "file", r.Name, "actual", r.Format)
		case r.Err != nil:
			logger.Error("Unreadable icon", "file", r.Name, "error", r.Err)
		case r.Format == "icns":
			logger.Info("Real icns", "file", r.Name, "renditions", len(r.Renditions))
			for _, d := range r.Renditions {
				logger.Debug("Rendition", "file", r.Name, "icon", d)
			}
		default:
			logger.Info("Icon", "file", r.Name, "format", r.Format, "size", fmt.Sprintf("%dx%d", r.Width, r.Height), "model", r.Model)
			if r.Analysis != nil {
				r.Analysis.Log(logger, r.Name)
			}
		}
	}
}
