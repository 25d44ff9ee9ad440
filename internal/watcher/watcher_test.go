package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"robotblocks/internal/watcher"
)

type change struct {
	path    string
	content string
}

func newWatcher(t *testing.T) (*watcher.Watcher, chan change) {
	t.Helper()
	ch := make(chan change, 16)
	w, err := watcher.New(func(path string, content []byte) {
		ch <- change{path, string(content)}
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, ch
}

func waitFor(t *testing.T, ch chan change, want string) change {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case c := <-ch:
			if c.content == want {
				return c
			}
		case <-deadline:
			t.Fatalf("no change with content %q", want)
		}
	}
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blockly.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	w, ch := newWatcher(t)
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"blocks":{}}`), 0644); err != nil {
		t.Fatal(err)
	}
	c := waitFor(t, ch, `{"blocks":{}}`)
	if abs, _ := filepath.Abs(path); c.path != abs {
		t.Errorf("unexpected path %s", c.path)
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blockly.json")
	os.WriteFile(path, []byte(`{}`), 0644)

	w, ch := newWatcher(t)
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	select {
	case c := <-ch:
		t.Fatalf("unexpected change for %s", c.path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_Switch(t *testing.T) {
	first := filepath.Join(t.TempDir(), "blockly.json")
	second := filepath.Join(t.TempDir(), "blockly.json")
	os.WriteFile(first, []byte(`{}`), 0644)
	os.WriteFile(second, []byte(`{}`), 0644)

	w, ch := newWatcher(t)
	if err := w.Watch(first); err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(second); err != nil {
		t.Fatal(err)
	}
	if abs, _ := filepath.Abs(second); w.Path() != abs {
		t.Fatalf("watching %s", w.Path())
	}

	os.WriteFile(second, []byte(`"second"`), 0644)
	waitFor(t, ch, `"second"`)

	if err := w.Watch(""); err != nil {
		t.Fatal(err)
	}
	if w.Path() != "" {
		t.Errorf("expected no path after Watch(\"\")")
	}
}
