package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestIsEventFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"installed-1.json", true},
		{"event.json.tmp", false},
		{"notes.txt", false},
		{".json", true},
	}
	for _, c := range cases {
		if got := isEventFile(c.name); got != c.want {
			t.Errorf("isEventFile(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

// collector gathers handled paths across goroutines.
type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) handle(path string) {
	c.mu.Lock()
	c.paths = append(c.paths, path)
	c.mu.Unlock()
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func (c *collector) waitFor(t *testing.T, n int, timeout time.Duration) []string {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if got := c.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d handled paths, got %v", n, c.snapshot())
	return nil
}

func TestInboxWatcherPicksUpNewFiles(t *testing.T) {
	inbox := t.TempDir()
	c := &collector{}
	w := NewInboxWatcher(inbox, c.handle)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Let the watcher attach before writing.
	time.Sleep(100 * time.Millisecond)

	writeEvent(t, inbox, "a.json", `{}`)
	writeEvent(t, inbox, "b.json", `{}`)
	writeEvent(t, inbox, "ignored.txt", `x`)

	got := c.waitFor(t, 2, 3*time.Second)
	for _, p := range got {
		if filepath.Ext(p) != ".json" {
			t.Errorf("non-event file handled: %s", p)
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run: %v", err)
	}
}

func TestInboxWatcherIgnoresTmpFiles(t *testing.T) {
	inbox := t.TempDir()
	c := &collector{}
	w := NewInboxWatcher(inbox, c.handle)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	writeEvent(t, inbox, "partial.json.tmp", `{}`)
	writeEvent(t, inbox, "full.json", `{}`)

	got := c.waitFor(t, 1, 3*time.Second)
	for _, p := range got {
		if filepath.Base(p) == "partial.json.tmp" {
			t.Error("tmp file handled")
		}
	}
}

func TestPollWatcherFindsFiles(t *testing.T) {
	inbox := t.TempDir()
	c := &collector{}
	w := NewPollWatcher(inbox, c.handle, 30*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	writeEvent(t, inbox, "a.json", `{}`)
	c.waitFor(t, 1, 2*time.Second)

	// The same file is not handled twice.
	time.Sleep(120 * time.Millisecond)
	if got := c.snapshot(); len(got) != 1 {
		t.Errorf("file handled %d times", len(got))
	}
}

func TestScanExisting(t *testing.T) {
	inbox := t.TempDir()
	writeEvent(t, inbox, "a.json", `{}`)
	writeEvent(t, inbox, "b.json", `{}`)
	writeEvent(t, inbox, "c.txt", `x`)

	c := &collector{}
	if err := ScanExisting(inbox, c.handle); err != nil {
		t.Fatalf("ScanExisting: %v", err)
	}
	if got := c.snapshot(); len(got) != 2 {
		t.Errorf("handled %d files, want 2", len(got))
	}
}

func TestScanExistingMissingDir(t *testing.T) {
	c := &collector{}
	if err := ScanExisting(filepath.Join(t.TempDir(), "absent"), c.handle); err != nil {
		t.Errorf("missing inbox must not error: %v", err)
	}
}

func TestEnsureDirsIdempotent(t *testing.T) {
	dirs := DirConfig{
		Inbox: filepath.Join(t.TempDir(), "inbox"),
		State: filepath.Join(t.TempDir(), "state"),
	}
	for i := 0; i < 2; i++ {
		if err := EnsureDirs(dirs); err != nil {
			t.Fatalf("EnsureDirs pass %d: %v", i, err)
		}
	}
	for _, d := range []string{dirs.Inbox, dirs.State, dirs.ProcessedDir(), dirs.FailedDir()} {
		fi, err := os.Stat(d)
		if err != nil || !fi.IsDir() {
			t.Errorf("missing directory %s: %v", d, err)
		}
	}
}

func TestMoveFile(t *testing.T) {
	src := writeEvent(t, t.TempDir(), "src.json", "payload")
	dst := filepath.Join(t.TempDir(), "dst.json")

	if err := moveFile(src, dst); err != nil {
		t.Fatalf("moveFile: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "payload" {
		t.Errorf("destination wrong: %q %v", data, err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still exists")
	}
}
