package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Expand replaces each directory in locations with the documentation files
// beneath it, in lexical order. Files are matched by extensions, or by
// DocExtensions when none are given. Hidden directories and node_modules
// are not descended into. Other locations, including ones that do not
// exist, are kept as given for the loader to read or reject.
func Expand(locations []string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DocExtensions
	}
	var out []string
	for _, location := range locations {
		info, err := os.Stat(location)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if info == nil || !info.IsDir() {
			out = append(out, location)
			continue
		}

		var files []string
		err = filepath.WalkDir(location, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != location && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(extensions, strings.ToLower(filepath.Ext(d.Name()))) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(files)
		out = append(out, files...)
	}
	return out, nil
}
