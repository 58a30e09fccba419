package dataloader

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// ResponseFuture is a one-shot handle to a Response that may still be
// produced by a background worker. Multiple futures may be subscribed to
// the same worker (see BuildOrchestrator); each receives an identical
// Response value. Dropping a future has no effect on the worker.
type ResponseFuture struct {
	mu    sync.Mutex
	resp  Response
	ready bool
	ch    <-chan singleflight.Result
}

// newReadyFuture wraps an already-terminal Response (DATA_MISSING, or a
// cache hit) as an immediately-ready future.
func newReadyFuture(resp Response) *ResponseFuture {
	return &ResponseFuture{resp: resp, ready: true}
}

// newPendingFuture subscribes to an in-flight singleflight call.
func newPendingFuture(ch <-chan singleflight.Result) *ResponseFuture {
	return &ResponseFuture{ch: ch}
}

// recvLocked must be called with f.mu held.
func (f *ResponseFuture) recvLocked() {
	if f.ready {
		return
	}
	res := <-f.ch
	// The worker func passed to singleflight never returns a non-nil
	// error; Val is always a populated Response.
	f.resp = res.Val.(Response)
	f.ready = true
}

// Wait blocks until the underlying build has produced a Response.
func (f *ResponseFuture) Wait() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recvLocked()
}

// Ready reports whether Get would return immediately, without blocking.
func (f *ResponseFuture) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ready {
		return true
	}

	select {
	case res := <-f.ch:
		f.resp = res.Val.(Response)
		f.ready = true
		return true
	default:
		return false
	}
}

// Get returns a stable reference to the terminal Response, blocking until
// it is available if necessary. Callers that already called Wait, or saw
// Ready return true, will never observe Get block.
func (f *ResponseFuture) Get() Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recvLocked()
	return f.resp
}
