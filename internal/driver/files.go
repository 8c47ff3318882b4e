package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the file extension of formattable sources.
const SourceExt = ".sb"

// CollectSourceFiles expands a mix of files and directories into a
// sorted, deduplicated list of .sb files. Directories are walked
// recursively; explicitly named files are taken as-is so a user can
// force-format a file with an unusual extension.
func CollectSourceFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// FilterIncluded keeps only files under one of the include roots,
// which are relative to the project root. Empty include keeps all.
func FilterIncluded(files []string, root string, include []string) []string {
	if len(include) == 0 {
		return files
	}
	var out []string
	for _, f := range files {
		for _, inc := range include {
			prefix := filepath.Join(root, inc)
			if f == prefix || strings.HasPrefix(f, prefix+string(filepath.Separator)) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
