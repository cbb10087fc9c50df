// Package rawio reads and writes packed RGBA buffers, optionally
// zstd-compressed.
package rawio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Stdio is the path that selects stdin or stdout.
const Stdio = "-"

// Compressed reports whether path names a zstd stream.
func Compressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".zst")
}

// ReadFile reads a raw buffer from path, or stdin for "-".
// Files ending in .zst are decompressed.
func ReadFile(path string) ([]byte, error) {
	var r io.Reader = os.Stdin
	if path != Stdio {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return Read(r, Compressed(path))
}

// Read reads all of r, decompressing zstd when compressed is set.
func Read(r io.Reader, compressed bool) ([]byte, error) {
	if !compressed {
		return io.ReadAll(r)
	}
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return data, nil
}

// WriteFile writes data to path, or stdout for "-".
// Files ending in .zst are compressed.
func WriteFile(path string, data []byte) error {
	if path == Stdio {
		return Write(os.Stdout, data, false)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, data, Compressed(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write writes data to w, compressing with zstd when compressed is set.
func Write(w io.Writer, data []byte, compressed bool) error {
	if !compressed {
		_, err := w.Write(data)
		return err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("zstd encode: %w", err)
	}
	return enc.Close()
}
