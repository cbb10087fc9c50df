package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGet(t *testing.T) {
	t.Setenv("MONODITHER_TEST_A", "direct")
	if got := Get("MONODITHER_TEST_A", "def"); got != "direct" {
		t.Errorf("got %q", got)
	}
	if got := Get("MONODITHER_TEST_UNSET", "def"); got != "def" {
		t.Errorf("default: got %q", got)
	}
}

func TestGet_FileFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "method")
	if err := os.WriteFile(path, []byte("  bayer-2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MONODITHER_TEST_B_FILE", path)
	if got := Get("MONODITHER_TEST_B", "def"); got != "bayer-2" {
		t.Errorf("got %q, want bayer-2", got)
	}

	t.Setenv("MONODITHER_TEST_C_FILE", filepath.Join(t.TempDir(), "missing"))
	if got := Get("MONODITHER_TEST_C", "def"); got != "def" {
		t.Errorf("unreadable file: got %q", got)
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("MONODITHER_TEST_INT", "8")
	t.Setenv("MONODITHER_TEST_BAD", "eight")
	if got := GetInt("MONODITHER_TEST_INT", 1); got != 8 {
		t.Errorf("got %d", got)
	}
	if got := GetInt("MONODITHER_TEST_BAD", 1); got != 1 {
		t.Errorf("malformed: got %d", got)
	}
}

func TestGetBool(t *testing.T) {
	cases := map[string]bool{"1": true, "YES": true, "t": true, "0": false, "No": false}
	for val, want := range cases {
		t.Setenv("MONODITHER_TEST_BOOL", val)
		if got := GetBool("MONODITHER_TEST_BOOL", !want); got != want {
			t.Errorf("%q: got %v", val, got)
		}
	}
	t.Setenv("MONODITHER_TEST_BOOL", "maybe")
	if !GetBool("MONODITHER_TEST_BOOL", true) {
		t.Error("unrecognised value should yield default")
	}
}
