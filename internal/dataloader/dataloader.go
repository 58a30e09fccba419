package dataloader

// DataLoader aggregates a RequestRegistry and a BuildOrchestrator behind
// the four public operations producers and consumers actually need. It
// carries no state of its own beyond that composition.
type DataLoader struct {
	registry     *RequestRegistry
	orchestrator *BuildOrchestrator
}

// NewDataLoader constructs a facade that loads data packages through
// loader (typically a *packageload.Loader in production, a fake in
// tests).
func NewDataLoader(loader PackageLoader) *DataLoader {
	registry := NewRequestRegistry()
	return &DataLoader{
		registry:     registry,
		orchestrator: NewBuildOrchestrator(registry, loader),
	}
}

// RegisterRequest forwards to the registry and returns the current top id.
func (d *DataLoader) RegisterRequest(req Request) Fingerprint {
	return d.registry.RegisterRequest(req)
}

// ReportLoadFailure forwards to the registry and returns the current top id.
func (d *DataLoader) ReportLoadFailure(fp Fingerprint) Fingerprint {
	return d.registry.ReportLoadFailure(fp)
}

// Build starts (or joins, or serves from cache) the build for id.
func (d *DataLoader) Build(id Fingerprint) *ResponseFuture {
	return d.orchestrator.Build(id)
}

// Clear wipes the registry and the terminal-response cache. Builds still
// in flight keep their single-flight calls; see BuildOrchestrator.Clear.
func (d *DataLoader) Clear() {
	d.registry.Clear()
	d.orchestrator.Clear()
}
