package iconkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/jackmordaunt/icns/v3"
)

func TestDiagnose(t *testing.T) {
	dir := t.TempDir()

	// A PNG renamed to .icns, the classic broken Tauri setup.
	writePNG(t, filepath.Join(dir, "icon.icns"), solid(32, 32, opaqueRed))
	writePNG(t, filepath.Join(dir, "icon.png"), disk(64, 20))
	if err := os.WriteFile(filepath.Join(dir, "32x32.png"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	reports := Diagnose(dir, DefaultDiagnoseFiles, DefaultAlphaThreshold)
	if len(reports) != len(DefaultDiagnoseFiles) {
		t.Fatalf("reports = %d, want %d", len(reports), len(DefaultDiagnoseFiles))
	}
	byName := map[string]FileReport{}
	for _, r := range reports {
		byName[r.Name] = r
	}

	fake := byName["icon.icns"]
	if !fake.FakeICNS || fake.Format != "png" || fake.Width != 32 {
		t.Errorf("icon.icns report = %+v, want fake png", fake)
	}

	png := byName["icon.png"]
	if !png.Healthy() || png.Format != "png" || png.Analysis == nil {
		t.Fatalf("icon.png report = %+v", png)
	}
	if png.Analysis.OpaqueCorners() {
		t.Error("disk icon reported opaque corners")
	}

	if !byName["128x128.png"].Missing || !byName["128x128@2x.png"].Missing {
		t.Error("missing files not reported")
	}
	if byName["32x32.png"].Err == nil {
		t.Error("undecodable file not reported")
	}

	LogReports(hclog.NewNullLogger(), reports)
}

func TestDiagnoseRealICNS(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, ICNSFileName))
	if err != nil {
		t.Fatal(err)
	}
	if err := icns.Encode(f, disk(128, 50)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	r := Diagnose(dir, []string{ICNSFileName}, DefaultAlphaThreshold)[0]
	if !r.Healthy() || r.Format != "icns" {
		t.Fatalf("report = %+v", r)
	}
	if len(r.Renditions) == 0 {
		t.Error("no renditions listed")
	}
}

func TestDiagnoseTruncatedICNS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ICNSFileName), []byte("icns\x00\x00\x10\x00ic07"), 0644); err != nil {
		t.Fatal(err)
	}
	r := Diagnose(dir, []string{ICNSFileName}, DefaultAlphaThreshold)[0]
	if r.Err == nil {
		t.Fatal("expected error for truncated icns")
	}
}
