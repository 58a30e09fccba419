//go:build !unix

package packageload

import (
	"fmt"
	"os"
)

// mmapFile falls back to a plain read on platforms without POSIX mmap
// semantics in golang.org/x/sys/unix (e.g. Windows). The data package is
// still treated as an immutable, read-only byte region by every caller.
func mmapFile(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("packageload: read %s: %w", path, err)
	}
	return data, func() error { return nil }, nil
}
