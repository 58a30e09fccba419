package dataloader

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
)

// Fingerprint is the 64-bit identity of a Request, derived from its
// canonical serialized byte image. The zero value is reserved to mean
// "no request" and is never returned for an actual registered request.
type Fingerprint uint64

// NoFingerprint is the reserved "nothing eligible" identity.
const NoFingerprint Fingerprint = 0

// serialize produces a canonical byte image of a request. Field order is
// fixed and every variable-length field is length-prefixed so that no
// concatenation of values can alias another request's image. Extra keys
// are sorted so that map iteration order never affects the result.
//
// Priority deliberately does NOT participate in the image: RegistryEntry
// tracks priority as a mutable field refreshed by re-registration, which
// only makes sense if changing priority alone does not change identity.
func serialize(r Request) []byte {
	buf := make([]byte, 0, 64+len(r.FilePath)+len(r.InstallLocation)+len(r.MagicNumber))

	var scratch [8]byte

	writeU32 := func(v uint32) {
		binary.BigEndian.PutUint32(scratch[:4], v)
		buf = append(buf, scratch[:4]...)
	}
	writeString := func(s string) {
		writeU32(uint32(len(s)))
		buf = append(buf, s...)
	}
	writeBytes := func(b []byte) {
		writeU32(uint32(len(b)))
		buf = append(buf, b...)
	}

	writeU32(uint32(r.EngineType))
	writeString(r.FilePath)
	writeString(r.InstallLocation)
	writeBytes(r.MagicNumber)

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	writeU32(uint32(len(keys)))
	for _, k := range keys {
		writeString(k)
		writeString(r.Extra[k])
	}

	return buf
}

// ComputeFingerprint derives the 64-bit identity of a request. It is a
// deterministic, non-cryptographic hash: equal requests (by value) always
// produce the same fingerprint within and across processes.
func ComputeFingerprint(r Request) Fingerprint {
	h := fnv.New64a()
	_, _ = h.Write(serialize(r))
	fp := Fingerprint(h.Sum64())
	if fp == NoFingerprint {
		// Collision with the reserved sentinel is astronomically unlikely
		// but would otherwise make a real request permanently ineligible.
		fp = 1
	}
	return fp
}
