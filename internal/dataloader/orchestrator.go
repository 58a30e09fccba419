package dataloader

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// BuildOrchestrator produces a Response for a requested fingerprint with
// single-flight semantics: concurrent Build calls for the same fingerprint
// share one PackageLoader.Load invocation, and every terminal outcome
// (success or failure) is cached until Clear.
//
// Dedup is delegated to golang.org/x/sync/singleflight: Group.DoChan
// already gives every concurrent caller of the same key its own result
// channel fed from one shared execution, which is exactly the multi
// subscriber behavior ResponseFuture needs.
type BuildOrchestrator struct {
	registry *RequestRegistry
	loader   PackageLoader

	sf singleflight.Group

	mu    sync.Mutex
	cache map[Fingerprint]Response
}

// NewBuildOrchestrator constructs an orchestrator that resolves ids
// against registry and runs builds through loader.
func NewBuildOrchestrator(registry *RequestRegistry, loader PackageLoader) *BuildOrchestrator {
	return &BuildOrchestrator{
		registry: registry,
		loader:   loader,
		cache:    make(map[Fingerprint]Response),
	}
}

// Build resolves id against the registry and returns a future for its
// terminal Response. An id with no eligible registry entry never reaches
// the loader: it is answered with DATA_MISSING immediately.
func (o *BuildOrchestrator) Build(id Fingerprint) *ResponseFuture {
	req, ok := o.registry.Lookup(id)
	if !ok {
		return newReadyFuture(Response{ID: id, Status: StatusDataMissing})
	}

	o.mu.Lock()
	if resp, ok := o.cache[id]; ok {
		o.mu.Unlock()
		return newReadyFuture(resp)
	}
	// Bind this build to the current cache: a Clear while it runs swaps
	// o.cache out, and the result then lands only in the detached map.
	cache := o.cache
	o.mu.Unlock()

	key := strconv.FormatUint(uint64(id), 36)
	ch := o.sf.DoChan(key, func() (interface{}, error) {
		// A prior single-flight call for this key may have finished and
		// populated the cache in the gap between the cache check above
		// and this closure running: re-check before invoking the loader
		// so a fresh DoChan group never triggers a second Load for a
		// fingerprint that already has a cached terminal Response.
		o.mu.Lock()
		if resp, ok := cache[id]; ok {
			o.mu.Unlock()
			return resp, nil
		}
		o.mu.Unlock()

		resp := o.loader.Load(req)
		resp.ID = id

		o.mu.Lock()
		cache[id] = resp
		o.mu.Unlock()

		return resp, nil
	})

	return newPendingFuture(ch)
}

// Clear drops the terminal-response cache. In-flight builds are not
// aborted; their results are simply no longer retained once they land.
// Their single-flight calls are not dropped: a Build for the same id made
// before such a call finishes joins it and receives its result.
func (o *BuildOrchestrator) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cache = make(map[Fingerprint]Response)
}
