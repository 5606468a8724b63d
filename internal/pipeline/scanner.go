package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Frame is a discovered frame image. Frames are numbered by their
// position in path order.
type Frame struct {
	// Index is the frame number within the clip.
	Index int
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Key is RelPath without extension, using forward slashes.
	Key string
	// Format is the source format (png, jpeg, gif, bmp, tiff, webp).
	Format string
	// Size is the file size in bytes.
	Size int64
}

var frameExtensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
}

// ScanFrames walks inputDir and returns its frames sorted by relative
// path. Hidden directories are skipped, as is skipDir when non-empty
// (so an output directory nested in the input is never re-read).
func ScanFrames(inputDir, skipDir string) ([]Frame, error) {
	var frames []Frame

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != inputDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			if skipDir != "" && path == skipDir && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		format, ok := frameExtensions[ext]
		if !ok {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		frames = append(frames, Frame{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Key:     filepath.ToSlash(strings.TrimSuffix(relPath, filepath.Ext(relPath))),
			Format:  format,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(frames, func(i, j int) bool { return frames[i].RelPath < frames[j].RelPath })
	for i := range frames {
		frames[i].Index = i
	}
	return frames, nil
}
