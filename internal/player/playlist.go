package player

import (
	"io/fs"
	"path/filepath"
	"slices"
)

// ScanDir returns the files under dir accepted by match, sorted by path.
// Subdirectories are walked only when recursive is set.
func ScanDir(dir string, recursive bool, match func(path string) bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if match == nil || match(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)
	return paths, nil
}
