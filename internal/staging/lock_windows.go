//go:build windows

package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const lockFileName = ".wikigen.lock"

// Lock is an exclusive, process-wide build lock: only one Commit may run
// against a given repository's wiki at a time.
//
// Windows has no flock equivalent wired up here, so this is a best-effort
// PID marker rather than a true exclusive lock.
type Lock struct {
	path string
	file *os.File
}

// AcquireLock writes a PID marker at <repoRoot>/<lockFileName>.
func AcquireLock(repoRoot string) (*Lock, error) {
	if err := os.MkdirAll(repoRoot, 0o755); err != nil {
		return nil, fmt.Errorf("creating repository root: %w", err)
	}

	path := filepath.Join(repoRoot, lockFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if _, err := file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("writing pid to lock file: %w", err)
	}
	return &Lock{path: path, file: file}, nil
}

// Release closes the lock file and removes the marker.
func (l *Lock) Release() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Close()
	_ = os.Remove(l.path)
}
