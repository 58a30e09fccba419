// Package mockformat is a minimal reference implementation of the
// downstream binary format packageload.Loader hands mapped regions to. It
// exists so this module's own tests can exercise a real, non-stub
// ModuleBundleParser without depending on the actual dictionary/connector
// format, which is out of scope.
//
// Wire layout, little-endian, all fields after the magic number
// length-prefixed:
//
//	magic number   (caller-supplied, validated by packageload.Loader)
//	version length (uint32)
//	version        (UTF-8 bytes)
package mockformat

import (
	"encoding/binary"
	"fmt"

	"github.com/mozcdata/dataloader/internal/dataloader"
)

// Bundle is the mockformat ModuleBundle: it carries nothing but the
// version string a caller encoded. The effective filename is reported by
// packageload.Loader's wrapper around it, not by Bundle itself.
type Bundle struct {
	version string
}

// GetDataManager implements dataloader.ModuleBundle.
func (b *Bundle) GetDataManager() dataloader.DataManager {
	return &manager{version: b.version}
}

type manager struct {
	version string
}

func (m *manager) GetDataVersion() string { return m.version }

// GetFilename always reports unset: mockformat never knows which source
// path was mapped, so packageload.Loader fills it in via its
// effective-path wrapper.
func (m *manager) GetFilename() (string, bool) { return "", false }

// Parser implements packageload.ModuleBundleParser for the format
// documented in the package comment.
type Parser struct{}

// NewParser constructs a Parser. It holds no state.
func NewParser() *Parser { return &Parser{} }

// Parse validates that region begins with magicNumber (packageload.Loader
// already checked this, so a mismatch here means a caller invoked Parse
// directly) and decodes the length-prefixed version string that follows.
func (p *Parser) Parse(region []byte, magicNumber []byte) (dataloader.ModuleBundle, error) {
	if len(region) < len(magicNumber) {
		return nil, fmt.Errorf("mockformat: region shorter than magic number")
	}
	if string(region[:len(magicNumber)]) != string(magicNumber) {
		return nil, fmt.Errorf("mockformat: magic number mismatch")
	}

	rest := region[len(magicNumber):]
	if len(rest) < 4 {
		return nil, fmt.Errorf("mockformat: truncated version length")
	}

	n := binary.LittleEndian.Uint32(rest[:4])
	rest = rest[4:]

	if uint64(len(rest)) < uint64(n) {
		return nil, fmt.Errorf("mockformat: truncated version string")
	}

	return &Bundle{version: string(rest[:n])}, nil
}

// Encode produces a region in the format Parse expects, for use by tests
// and the demo command that write synthetic data packages to disk.
func Encode(magicNumber []byte, version string) []byte {
	buf := make([]byte, 0, len(magicNumber)+4+len(version))
	buf = append(buf, magicNumber...)

	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(version)))
	buf = append(buf, lenBuf...)
	buf = append(buf, version...)

	return buf
}
