// Package packageload implements the external-facing adapter that turns a
// validated request into a terminal dataloader.Response: it optionally
// copies the package to an install location, memory-maps the effective
// source, validates the magic number, and hands the mapped region to a
// ModuleBundleParser.
package packageload

import (
	"bytes"
	"fmt"

	"github.com/mozcdata/dataloader/internal/dataloader"
)

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mockformat.go -package=mocks github.com/mozcdata/dataloader/internal/packageload ModuleBundleParser

// ModuleBundleParser is the downstream, out-of-scope collaborator that
// turns a validated mmap region into a dataloader.ModuleBundle. Its
// implementation (dictionary, connector, segmenter construction) is not
// part of this module; see the mockformat subpackage for a minimal
// reference implementation exercised by this package's own tests.
type ModuleBundleParser interface {
	Parse(region []byte, magicNumber []byte) (dataloader.ModuleBundle, error)
}

// Loader is the production dataloader.PackageLoader: it optionally
// installs the package to a caller-chosen location with an atomic
// copy-then-rename, memory-maps the effective source, validates the
// magic number, and hands the region to a ModuleBundleParser.
type Loader struct {
	parser ModuleBundleParser
}

// NewLoader constructs a Loader that parses mapped regions with parser.
func NewLoader(parser ModuleBundleParser) *Loader {
	return &Loader{parser: parser}
}

// Load implements dataloader.PackageLoader. The ordering of checks
// matters: a missing file is MMAP_FAILURE, not DATA_BROKEN; a present
// file with the wrong magic number is DATA_BROKEN, not MMAP_FAILURE.
func (l *Loader) Load(req dataloader.Request) dataloader.Response {
	resp := dataloader.Response{Request: req}

	effectivePath := req.FilePath
	if req.InstallLocation != "" {
		if err := copyFile(req.FilePath, req.InstallLocation); err != nil {
			resp.Status = dataloader.StatusInstallFailure
			return resp
		}
		effectivePath = req.InstallLocation
	}

	region, unmap, err := mmapFile(effectivePath)
	if err != nil {
		resp.Status = dataloader.StatusMmapFailure
		return resp
	}

	if !bytes.HasPrefix(region, req.MagicNumber) {
		_ = unmap()
		resp.Status = dataloader.StatusDataBroken
		return resp
	}

	bundle, err := l.parser.Parse(region, req.MagicNumber)
	if err != nil {
		_ = unmap()
		resp.Status = dataloader.StatusDataBroken
		return resp
	}

	resp.Status = dataloader.StatusReloadReady
	resp.Modules = withEffectivePath(bundle, effectivePath)

	return resp
}

// withEffectivePath lets the parser build a bundle without knowing which
// of file_path/install_location ended up being mapped, while still
// reporting the path that was actually loaded. If the bundle already
// reports a filename (the parser embeds one), that is left untouched.
func withEffectivePath(bundle dataloader.ModuleBundle, effectivePath string) dataloader.ModuleBundle {
	dm := bundle.GetDataManager()
	if _, ok := dm.GetFilename(); ok {
		return bundle
	}
	return effectivePathBundle{inner: bundle, path: effectivePath}
}

type effectivePathBundle struct {
	inner dataloader.ModuleBundle
	path  string
}

func (b effectivePathBundle) GetDataManager() dataloader.DataManager {
	return effectivePathDataManager{inner: b.inner.GetDataManager(), path: b.path}
}

type effectivePathDataManager struct {
	inner dataloader.DataManager
	path  string
}

func (d effectivePathDataManager) GetDataVersion() string { return d.inner.GetDataVersion() }
func (d effectivePathDataManager) GetFilename() (string, bool) {
	return d.path, true
}

// mustCopyError gives a uniform wrapped error for the install step; kept
// as a helper so loader.go and fileops.go agree on wording.
func mustCopyError(src, dst string, err error) error {
	return fmt.Errorf("packageload: copy %s -> %s: %w", src, dst, err)
}
