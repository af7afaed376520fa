package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"scribe/internal/services"
)

// Discover returns the recordings under inputDir whose extension matches,
// sorted by path for deterministic processing order. The walk follows the
// directory tree only when recursive is set.
func Discover(inputDir, extension string, recursive bool) ([]string, error) {
	extension = normalizeExtension(extension)

	var recordings []string
	if recursive {
		err := filepath.WalkDir(inputDir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			if matchesExtension(entry.Name(), extension) {
				recordings = append(recordings, path)
			}
			return nil
		})
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "", "scan", fmt.Sprintf("walk %s", inputDir), err)
		}
	} else {
		entries, err := os.ReadDir(inputDir)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "", "scan", fmt.Sprintf("read %s", inputDir), err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if matchesExtension(entry.Name(), extension) {
				recordings = append(recordings, filepath.Join(inputDir, entry.Name()))
			}
		}
	}

	sort.Strings(recordings)
	return recordings, nil
}

func normalizeExtension(extension string) string {
	extension = strings.ToLower(strings.TrimSpace(extension))
	if extension == "" {
		return ""
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return extension
}

func matchesExtension(name, extension string) bool {
	if extension == "" {
		return true
	}
	return strings.EqualFold(filepath.Ext(name), extension)
}
