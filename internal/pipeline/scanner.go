package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Source is a discovered input image.
type Source struct {
	// AbsPath is the path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory, slash-separated.
	RelPath string
	// Key is the asset key (RelPath without extension).
	Key string
	// Format is the source format from the extension (png, jpeg, gif, ...).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions maps recognized file extensions to format names.
var imageExtensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".webp": "webp",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// ScanImages walks inputDir and returns all image sources sorted by path.
// Hidden directories are skipped. skipDir, when non-empty, is excluded so
// an output directory nested in the input is never re-read.
func ScanImages(inputDir, skipDir string) ([]Source, error) {
	var sources []Source

	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != inputDir && (strings.HasPrefix(d.Name(), ".") || path == skipDir) {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		format, ok := imageExtensions[ext]
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: relPath,
			Key:     relPath[:len(relPath)-len(ext)],
			Format:  format,
			Size:    info.Size(),
		})
		return nil
	})

	sort.Slice(sources, func(i, j int) bool { return sources[i].RelPath < sources[j].RelPath })

	// "a.png" and "a.jpg" would share key "a"; later ones keep their extension.
	seen := make(map[string]bool, len(sources))
	for i := range sources {
		if seen[sources[i].Key] {
			sources[i].Key = sources[i].RelPath
		}
		seen[sources[i].Key] = true
	}
	return sources, err
}
