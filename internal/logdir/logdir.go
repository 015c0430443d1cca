// Package logdir prepares the directories the file logger writes into.
package logdir

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Ensure creates every directory in dirs that does not exist yet and returns
// the ones it created. An existing directory is not an error; an existing
// non-directory is.
func Ensure(fs afero.Fs, dirs ...string) ([]string, error) {
	var created []string

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}

		info, err := fs.Stat(dir)
		switch {
		case err == nil && info.IsDir():
			continue
		case err == nil:
			return created, fmt.Errorf("failed to create logs directory %q: %w", dir, os.ErrExist)
		case !os.IsNotExist(err):
			return created, fmt.Errorf("failed to create logs directory %q: %w", dir, err)
		}

		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return created, fmt.Errorf("failed to create logs directory %q: %w", dir, err)
		}
		created = append(created, dir)
	}

	return created, nil
}
