package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScriptWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "network.toml")
	if err := os.WriteFile(path, []byte(`people = ["Alex"]`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	sw, err := NewScriptWatcher(path)
	if err != nil {
		t.Fatalf("NewScriptWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := sw.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(`people = ["Alex", "Jordan"]`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	select {
	case ev := <-sw.Events():
		if len(ev.Paths) != 1 || filepath.Base(ev.Paths[0]) != "network.toml" {
			t.Errorf("Expected change for network.toml, got %v", ev.Paths)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for change event")
	}
}

func TestScriptWatcher_ClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.toml")

	sw, err := NewScriptWatcher(path)
	if err != nil {
		t.Fatalf("NewScriptWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := sw.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()

	for {
		select {
		case _, ok := <-sw.Events():
			if !ok {
				return
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Events channel was not closed after cancel")
		}
	}
}

func TestScriptWatcher_MissingDirectory(t *testing.T) {
	sw, err := NewScriptWatcher(filepath.Join(t.TempDir(), "gone", "network.toml"))
	if err != nil {
		t.Fatalf("NewScriptWatcher() error = %v", err)
	}
	if err := sw.Start(context.Background()); err == nil {
		t.Error("Expected error watching a missing directory")
	}
}
