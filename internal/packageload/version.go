package packageload

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two data-package version strings, returning -1,
// 0, or 1 as a < b, a == b, or a > b. It is used by callers (see
// cmd/mozc-dataloader-demo) to log a downgrade warning when a newly built
// bundle's version is older than the one currently installed; it never
// affects a Response's status, which is the sole error channel a build
// reports through.
func CompareVersions(a, b string) (int, error) {
	va, err := semver.NewVersion(a)
	if err != nil {
		return 0, fmt.Errorf("packageload: parse version %q: %w", a, err)
	}

	vb, err := semver.NewVersion(b)
	if err != nil {
		return 0, fmt.Errorf("packageload: parse version %q: %w", b, err)
	}

	return va.Compare(vb), nil
}
