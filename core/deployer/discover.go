// Package deployer discovers archive files and runs them through the OIC
// import/activate pipeline one at a time.
package deployer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverArchives resolves the raw archive input into an ordered list of
// paths. A directory is walked recursively for files with the given
// extension; anything else is treated as a comma-separated list of paths.
// An empty result is an error: a run with nothing to deploy is a
// configuration problem, and no network call should follow.
func DiscoverArchives(input, ext string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("no archive input provided")
	}

	info, err := os.Stat(input)
	if err == nil && info.IsDir() {
		var found []string
		walkErr := filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ext) {
				found = append(found, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %s: %w", input, walkErr)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no %s files found in directory %s", ext, input)
		}
		sort.Strings(found)
		return found, nil
	}

	var files []string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		files = append(files, part)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no archive paths in input %q", input)
	}
	return files, nil
}
