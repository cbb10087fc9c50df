package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/AnyUserName/monodither/internal/dither"
	"github.com/google/go-cmp/cmp"
)

func TestFormatBayer(t *testing.T) {
	if got, want := formatBayer(0, false), "0 2\n3 1\n"; got != want {
		t.Errorf("order 0:\ngot  %q\nwant %q", got, want)
	}
	if got, want := formatBayer(0, true), "0.0000 0.5000\n0.7500 0.2500\n"; got != want {
		t.Errorf("order 0 thresholds:\ngot  %q\nwant %q", got, want)
	}

	lines := strings.Split(strings.TrimSuffix(formatBayer(1, false), "\n"), "\n")
	want := []string{
		" 0  8  2 10",
		"12  4 14  6",
		" 3 11  1  9",
		"15  7 13  5",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("order 1 (-want +got):\n%s", diff)
	}
}

func TestSiblingPath(t *testing.T) {
	cases := []struct {
		in   string
		m    dither.Method
		ext  string
		want string
	}{
		{"photos/cat.jpg", dither.FloydSteinberg, "png", "photos/cat.floyd-steinberg.png"},
		{"noext", dither.Bayer2, "webp", "noext.bayer-2.webp"},
		{"a.b.png", dither.Quantise, "jpg", "a.b.quantise.jpg"},
	}
	for _, c := range cases {
		if got := siblingPath(c.in, c.m, c.ext); got != c.want {
			t.Errorf("siblingPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		0:           "0 B",
		1023:        "1023 B",
		1536:        "1.5 KB",
		3 * 1 << 20: "3.0 MB",
	}
	for in, want := range cases {
		if got := formatBytes(in); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncKey(t *testing.T) {
	if got := truncKey("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncKey("a/very/long/asset/key", 10); got != "...set/key" {
		t.Errorf("got %q", got)
	}
}

func TestResolveProfile_Overrides(t *testing.T) {
	defer func() {
		buildProfile, buildMethods, buildFormats, buildQuality = "eink", nil, nil, 0
	}()

	buildProfile = "thermal"
	buildMethods = []string{"bayer-3", "7"}
	buildFormats = []string{"jpeg"}
	buildQuality = 40

	prof, err := resolveProfile()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]dither.Method{dither.Bayer3, dither.FloydSteinberg}, prof.Methods); diff != "" {
		t.Errorf("methods (-want +got):\n%s", diff)
	}
	if prof.Name != "thermal" || prof.Quality != 40 || prof.Formats[0] != "jpeg" {
		t.Errorf("profile: %+v", prof)
	}

	buildMethods = []string{"sierra"}
	if _, err := resolveProfile(); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestPrintMethods(t *testing.T) {
	var buf bytes.Buffer
	printMethods(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(dither.Methods()) {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.Contains(lines[7], "7  floyd-steinberg") {
		t.Errorf("last line %q", lines[7])
	}
}
