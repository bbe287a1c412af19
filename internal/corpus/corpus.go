// Package corpus assembles the reference documentation blob that is handed
// read-only to every rendering task.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
)

// Load concatenates every regular file under root, in traversal order, into
// a single string joined by newlines.
//
// Unreadable files never abort assembly: their errors are aggregated into the
// returned error while the content built from the readable files is still
// returned and usable. Callers decide whether to log or fail.
func Load(root string) (string, error) {
	var parts []string
	var errs error

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("reference %s: %w", path, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			errs = multierr.Append(errs, fmt.Errorf("reference %s: %w", path, rerr))
			return nil
		}
		parts = append(parts, string(data))
		return nil
	})
	if walkErr != nil {
		errs = multierr.Append(errs, walkErr)
	}

	return strings.Join(parts, "\n"), errs
}
