package rawio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func buffer() []byte {
	// Dithered buffers are long runs of 0/255 gray with alpha; they
	// compress well, which is the point of the .zst path.
	var b []byte
	for i := 0; i < 4096; i++ {
		v := byte(0)
		if i%3 == 0 {
			v = 255
		}
		b = append(b, v, v, v, 255)
	}
	return b
}

func TestWriteReadFile(t *testing.T) {
	for _, name := range []string{"img.rgba", "img.rgba.zst", "IMG.RGBA.ZST"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			data := buffer()
			if err := WriteFile(path, data); err != nil {
				t.Fatal(err)
			}
			back, err := ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(back, data) {
				t.Fatal("round trip changed the buffer")
			}
		})
	}
}

func TestCompressedOnDisk(t *testing.T) {
	dir := t.TempDir()
	data := buffer()
	raw := filepath.Join(dir, "a.rgba")
	zst := filepath.Join(dir, "a.rgba.zst")
	if err := WriteFile(raw, data); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(zst, data); err != nil {
		t.Fatal(err)
	}
	ri, _ := os.Stat(raw)
	zi, _ := os.Stat(zst)
	if ri.Size() != int64(len(data)) {
		t.Errorf("raw file size %d, want %d", ri.Size(), len(data))
	}
	if zi.Size() >= ri.Size() {
		t.Errorf("compressed file (%d) not smaller than raw (%d)", zi.Size(), ri.Size())
	}
}

func TestRead_CorruptZstd(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("not zstd at all")), true); err == nil {
		t.Fatal("expected error for corrupt stream")
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.rgba")); err == nil {
		t.Fatal("expected error")
	}
}
