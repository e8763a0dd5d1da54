package job

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sys/unix"
)

// scanHooks registers the <name>.hook files found in the hooks directory
// next to the specification. A missing directory means no hooks.
func scanHooks(specFile string) (map[HookName]string, error) {
	hooks := make(map[HookName]string)

	dir := filepath.Join(filepath.Dir(specFile), hooksDirName)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return hooks, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, specErrorf(specFile, "hooks", "unable to read hooks directory '%s': %v", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, hookSuffix) {
			continue
		}
		stem := HookName(strings.TrimSuffix(name, hookSuffix))
		if !slices.Contains(hookNames, stem) {
			return nil, specErrorf(specFile, "hooks", "invalid hook name '%s'", stem)
		}
		hooks[stem] = filepath.Join(dir, name)
	}

	return hooks, nil
}

var (
	errHookNotRegular    = errors.New("doesn't exist or isn't a regular file")
	errHookNotExecutable = errors.New("isn't executable")
)

func checkHook(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return errHookNotRegular
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		return errHookNotExecutable
	}
	return nil
}
