package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cratesort/internal/services"
)

// Scan returns the MP3 files sitting directly in root, as full paths in
// lexical order. Hidden files are ignored. The scan is deliberately
// non-recursive: subfolders are the destination of a run, never its
// input.
func Scan(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "catalog", "scan directory",
			fmt.Sprintf("Failed to read directory %s", root), err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".mp3") {
			continue
		}
		files = append(files, filepath.Join(root, name))
	}
	return files, nil
}

// AnalyzeCollection counts the MP3 files held by each subfolder of
// root. Hidden folders are skipped and empty folders are omitted, so
// the result reflects the already-cataloged part of the collection.
func AnalyzeCollection(root string) (map[string]int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "catalog", "analyze collection",
			fmt.Sprintf("Failed to read directory %s", root), err)
	}

	counts := make(map[string]int)
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		tracks, err := Scan(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		if len(tracks) > 0 {
			counts[entry.Name()] = len(tracks)
		}
	}
	return counts, nil
}
