//go:build unix

package packageload

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile opens path and maps it read-only, matching the
// golang.org/x/sys/unix usage in
// internal/runtime/asyncio/zerocopy_unix_file.go. The returned closer
// must be called once the mapped region is no longer needed.
func mmapFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("packageload: open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("packageload: stat %s: %w", path, err)
	}
	if st.Size() == 0 {
		return nil, nil, fmt.Errorf("packageload: %s is empty", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("packageload: mmap %s: %w", path, err)
	}

	closer := func() error { return unix.Munmap(data) }

	return data, closer, nil
}
