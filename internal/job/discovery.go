package job

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SpecDirName is the directory name that marks a backup job
const SpecDirName = ".backup"

// DiscoveryOptions bounds the filesystem scan
type DiscoveryOptions struct {
	Root    string
	Exclude []string // spec paths starting with one of these are ignored
	Skip    []string // directories that are never descended into
}

// Discover walks opts.Root and returns the spec.json of every .backup
// directory, in traversal order. Unreadable subtrees are skipped.
func Discover(opts DiscoveryOptions) []string {
	root := opts.Root
	if root == "" {
		root = "/"
	}

	skip := make([]string, 0, len(opts.Skip))
	for _, dir := range opts.Skip {
		if dir != "" {
			skip = append(skip, filepath.Clean(dir))
		}
	}

	var specs []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		// a symlinked .backup still marks a job, but links are never followed further
		symlink := d.Type()&fs.ModeSymlink != 0
		if !d.IsDir() && !symlink {
			return nil
		}
		if path != root && slices.Contains(skip, path) {
			if !d.IsDir() {
				return nil
			}
			return fs.SkipDir
		}
		if d.Name() != SpecDirName {
			return nil
		}

		spec := filepath.Join(path, SpecFileName)
		if info, err := os.Stat(spec); err != nil || !info.Mode().IsRegular() {
			return nil
		}
		if excluded(spec, opts.Exclude) {
			return nil
		}
		specs = append(specs, spec)
		return nil
	})

	return specs
}

func excluded(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
