// Package datawatch turns filesystem change notifications into requests
// registered with a dataloader.DataLoader. It is the production trigger a
// real engine uses instead of only being driven by explicit producer
// calls: a data package created or rewritten at a tracked path makes
// itself known without a restart. Other files in the same directory are
// ignored.
package datawatch

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/mozcdata/dataloader/internal/dataloader"
)

// Registerer is the slice of *dataloader.DataLoader a Watcher needs.
// Narrowed to an interface so tests can observe registrations without a
// full DataLoader/PackageLoader pair.
type Registerer interface {
	RegisterRequest(req dataloader.Request) dataloader.Fingerprint
}

// Watcher watches a set of directories and registers a request whenever a
// file matching one of its tracked Requests is created or written.
type Watcher struct {
	fsw    *fsnotify.Watcher
	loader Registerer

	mu      sync.Mutex
	tracked map[string]dataloader.Request

	done chan struct{}
}

// New creates a Watcher that registers requests against loader. Call
// Track to add paths before or after calling Start.
func New(loader Registerer) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsw:     fsw,
		loader:  loader,
		tracked: make(map[string]dataloader.Request),
		done:    make(chan struct{}),
	}, nil
}

// Track arms the watcher for req.FilePath: any create or write event on
// that exact path re-registers req. The containing directory is added to
// the underlying fsnotify watch if not already present, since fsnotify
// watches directories, not individual files.
func (w *Watcher) Track(req dataloader.Request) error {
	path, err := filepath.Abs(req.FilePath)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.tracked[path] = req
	w.mu.Unlock()

	return w.fsw.Add(filepath.Dir(path))
}

// Start runs the event loop in a new goroutine. It returns immediately;
// call Close to stop.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("datawatch: watch error: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	path, err := filepath.Abs(ev.Name)
	if err != nil {
		log.Printf("datawatch: abs path for %s: %v", ev.Name, err)
		return
	}

	w.mu.Lock()
	req, ok := w.tracked[path]
	w.mu.Unlock()
	if !ok {
		return
	}

	id := w.loader.RegisterRequest(req)
	log.Printf("datawatch: %s changed, registered request %d", path, id)
}

// Close stops the event loop and releases the underlying fsnotify watches.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
