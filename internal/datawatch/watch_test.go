package datawatch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mozcdata/dataloader/internal/dataloader"
)

type spyRegisterer struct {
	mu   sync.Mutex
	reqs []dataloader.Request
}

func (s *spyRegisterer) RegisterRequest(req dataloader.Request) dataloader.Fingerprint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	return dataloader.Fingerprint(len(s.reqs))
}

func (s *spyRegisterer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reqs)
}

func TestWatcher_RegistersOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mock.data")
	if err := os.WriteFile(path, []byte("MOCK"), 0o644); err != nil {
		t.Fatal(err)
	}

	spy := &spyRegisterer{}

	w, err := New(spy)
	if err != nil {
		t.Skip("fsnotify not supported:", err)
	}
	defer w.Close()

	if err := w.Track(dataloader.Request{FilePath: path, MagicNumber: []byte("MOCK")}); err != nil {
		t.Fatal(err)
	}
	w.Start()

	if err := os.WriteFile(path, []byte("MOCK!"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if spy.count() > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for watcher to observe the write")
}

func TestWatcher_IgnoresUntrackedPaths(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "tracked.data")
	other := filepath.Join(dir, "other.data")
	if err := os.WriteFile(tracked, []byte("MOCK"), 0o644); err != nil {
		t.Fatal(err)
	}

	spy := &spyRegisterer{}
	w, err := New(spy)
	if err != nil {
		t.Skip("fsnotify not supported:", err)
	}
	defer w.Close()

	if err := w.Track(dataloader.Request{FilePath: tracked, MagicNumber: []byte("MOCK")}); err != nil {
		t.Fatal(err)
	}
	w.Start()

	if err := os.WriteFile(other, []byte("MOCK"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if got := spy.count(); got != 0 {
		t.Fatalf("RegisterRequest called %d times for an untracked path, want 0", got)
	}
}
