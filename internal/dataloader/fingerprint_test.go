package dataloader

import "testing"

func TestComputeFingerprint_Deterministic(t *testing.T) {
	r := Request{EngineType: EngineDesktop, FilePath: "mock.data", MagicNumber: []byte("MOCK"), Priority: 5}

	a := ComputeFingerprint(r)
	b := ComputeFingerprint(r)

	if a != b {
		t.Fatalf("fingerprint not deterministic: %d != %d", a, b)
	}
	if a == NoFingerprint {
		t.Fatalf("fingerprint collided with the reserved sentinel")
	}
}

func TestComputeFingerprint_DistinctOnIdentityFields(t *testing.T) {
	base := Request{EngineType: EngineDesktop, FilePath: "a", InstallLocation: "b", MagicNumber: []byte("MOCK"), Priority: 1, Extra: map[string]string{"k": "v"}}

	variants := []Request{
		base,
		{EngineType: EngineMobile, FilePath: base.FilePath, InstallLocation: base.InstallLocation, MagicNumber: base.MagicNumber, Priority: base.Priority, Extra: base.Extra},
		{EngineType: base.EngineType, FilePath: "a2", InstallLocation: base.InstallLocation, MagicNumber: base.MagicNumber, Priority: base.Priority, Extra: base.Extra},
		{EngineType: base.EngineType, FilePath: base.FilePath, InstallLocation: "b2", MagicNumber: base.MagicNumber, Priority: base.Priority, Extra: base.Extra},
		{EngineType: base.EngineType, FilePath: base.FilePath, InstallLocation: base.InstallLocation, MagicNumber: []byte("OTHR"), Priority: base.Priority, Extra: base.Extra},
		{EngineType: base.EngineType, FilePath: base.FilePath, InstallLocation: base.InstallLocation, MagicNumber: base.MagicNumber, Priority: base.Priority, Extra: map[string]string{"k": "v2"}},
	}

	seen := make(map[Fingerprint]bool, len(variants))
	for i, v := range variants {
		fp := ComputeFingerprint(v)
		if seen[fp] {
			t.Fatalf("variant %d collided with an earlier variant", i)
		}
		seen[fp] = true
	}
}

// TestComputeFingerprint_PriorityExcluded pins down that Priority alone
// never changes identity: RequestRegistry relies on this to let a
// re-registration at a different priority update the existing entry
// in place instead of creating a second one.
func TestComputeFingerprint_PriorityExcluded(t *testing.T) {
	low := Request{FilePath: "foo", MagicNumber: []byte("MOCK"), Priority: 5}
	high := low
	high.Priority = 0

	if ComputeFingerprint(low) != ComputeFingerprint(high) {
		t.Fatalf("priority alone must not change the fingerprint")
	}
}

func TestComputeFingerprint_ExtraKeyOrderIrrelevant(t *testing.T) {
	r1 := Request{FilePath: "x", Extra: map[string]string{"a": "1", "b": "2"}}
	r2 := Request{FilePath: "x", Extra: map[string]string{"b": "2", "a": "1"}}

	if ComputeFingerprint(r1) != ComputeFingerprint(r2) {
		t.Fatalf("map iteration order should not affect the fingerprint")
	}
}
