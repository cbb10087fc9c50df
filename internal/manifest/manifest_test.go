package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/monodither/internal/dither"
)

func sampleManifest() *Manifest {
	m := New("test-profile")
	m.BuildInfo = &BuildInfo{Workers: 4, Seed: 99}
	m.Assets["test/image"] = Asset{
		Original: OriginalInfo{
			Width: 8, Height: 6,
			Format: "jpeg", Size: 100000, HasAlpha: false,
		},
		MeanLuminance: 0.42,
		Variants: []Variant{
			{Method: dither.FloydSteinberg, Format: "png", Width: 8, Height: 6, Size: 5, Hash: "abcd1234abcd1234",
				Path: "test/image.floyd-steinberg.abcd1234.png", WhiteRatio: 0.4},
			{Method: dither.Bayer2, Format: "png", Width: 8, Height: 6, Size: 7, Hash: "0123456789abcdef",
				Path: "test/image.bayer-2.01234567.png", WhiteRatio: 0.43},
		},
	}
	m.ComputeStats()
	return m
}

// writeVariantFiles creates the files a manifest refers to, with the
// recorded sizes.
func writeVariantFiles(t *testing.T, m *Manifest, dir string) {
	t.Helper()
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			p := filepath.Join(dir, filepath.FromSlash(v.Path))
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(p, make([]byte, v.Size), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestManifestRoundtrip(t *testing.T) {
	m := sampleManifest()

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := WriteJSON(m, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	m2, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if m2.Version != SupportedManifestVersion {
		t.Errorf("version: got %d, want %d", m2.Version, SupportedManifestVersion)
	}
	if m2.Profile != "test-profile" {
		t.Errorf("profile: got %q", m2.Profile)
	}
	if m2.BuildInfo == nil || m2.BuildInfo.Workers != 4 || m2.BuildInfo.Seed != 99 {
		t.Fatalf("build_info: got %+v", m2.BuildInfo)
	}

	a, ok := m2.Assets["test/image"]
	if !ok {
		t.Fatal("asset test/image missing")
	}
	if len(a.Variants) != 2 {
		t.Fatalf("variants: got %d", len(a.Variants))
	}
	if a.Variants[1].Method != dither.Bayer2 {
		t.Errorf("variant method: got %s", a.Variants[1].Method)
	}

	if m2.Stats.TotalAssets != 1 || m2.Stats.TotalVariants != 2 {
		t.Errorf("stats: got %+v", m2.Stats)
	}
	if m2.Stats.TotalOutputBytes != 12 {
		t.Errorf("total_output_bytes: got %d", m2.Stats.TotalOutputBytes)
	}
	if m2.Stats.ByMethod["floyd-steinberg"] != 1 || m2.Stats.ByMethod["bayer-2"] != 1 {
		t.Errorf("by_method: got %v", m2.Stats.ByMethod)
	}
}

func TestManifestMethodsAreNames(t *testing.T) {
	data, err := json.Marshal(sampleManifest())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"method":"floyd-steinberg"`) {
		t.Errorf("method not written by name: %s", data)
	}
}

func TestManifestVersion(t *testing.T) {
	m := New("v-test")
	if m.Version != SupportedManifestVersion {
		t.Errorf("new manifest version: got %d, want %d", m.Version, SupportedManifestVersion)
	}
}

func TestComputeStats_KeepsFailed(t *testing.T) {
	m := sampleManifest()
	m.Stats.Failed = 3
	m.ComputeStats()
	if m.Stats.Failed != 3 {
		t.Errorf("failed: got %d, want 3", m.Stats.Failed)
	}
}

func TestManifestIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"generated_at": "2025-01-01T00:00:00Z",
		"profile": "test",
		"base_path": "./",
		"future_field": "should be ignored",
		"build_info": { "workers": 8, "new_flag": true },
		"assets": {},
		"stats": { "total_input_bytes": 0, "total_output_bytes": 0, "total_assets": 0, "total_variants": 0, "new_stat": 42 }
	}`

	var m Manifest
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if m.Version != 1 {
		t.Errorf("version: got %d", m.Version)
	}
	if m.BuildInfo == nil || m.BuildInfo.Workers != 8 {
		t.Error("build_info not parsed correctly")
	}
}

func TestReadJSON_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadJSON(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0o644)
	if _, err := ReadJSON(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestValidate_OK(t *testing.T) {
	m := sampleManifest()
	dir := t.TempDir()
	writeVariantFiles(t, m, dir)
	if errs := m.Validate(dir); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidate_Problems(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(m *Manifest, dir string)
		want   string
	}{
		{"version", func(m *Manifest, _ string) { m.Version = 2 }, "unsupported manifest version"},
		{"missing file", func(m *Manifest, dir string) {
			os.Remove(filepath.Join(dir, "test", "image.bayer-2.01234567.png"))
		}, "file not found"},
		{"size mismatch", func(m *Manifest, dir string) {
			os.WriteFile(filepath.Join(dir, "test", "image.bayer-2.01234567.png"), []byte("x"), 0o644)
		}, "size mismatch"},
		{"stats", func(m *Manifest, _ string) { m.Stats.TotalVariants = 9 }, "stats.total_variants mismatch"},
		{"unknown method", func(m *Manifest, _ string) {
			a := m.Assets["test/image"]
			a.Variants[0].Method = dither.Method(42)
		}, "unknown method"},
		{"dimensions", func(m *Manifest, _ string) {
			a := m.Assets["test/image"]
			a.Variants[1].Width = 3
		}, "differ from original"},
		{"duplicate path", func(m *Manifest, _ string) {
			a := m.Assets["test/image"]
			a.Variants[1].Path = a.Variants[0].Path
			a.Variants[1].Size = a.Variants[0].Size
		}, "already used"},
		{"no variants", func(m *Manifest, _ string) {
			m.Assets["empty"] = Asset{Original: OriginalInfo{Width: 1, Height: 1}}
			m.ComputeStats()
		}, "no variants"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := sampleManifest()
			dir := t.TempDir()
			writeVariantFiles(t, m, dir)
			c.mutate(m, dir)

			errs := m.Validate(dir)
			found := false
			for _, e := range errs {
				if strings.Contains(e, c.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("want an error containing %q, got %v", c.want, errs)
			}
		})
	}
}
