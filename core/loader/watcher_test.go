package loader

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

const watcherFixtureV1 = `
master_seed: "correct horse battery staple"
accounts:
  - name: chase
    fields:
      username: rand
`

const watcherFixtureV2 = `
master_seed: "correct horse battery staple"
accounts:
  - name: chase
    fields:
      username: alice
`

func TestWatcherReloadsOnAccountFileChange(t *testing.T) {
	dir := t.TempDir()
	acctPath := filepath.Join(dir, "chase.yaml")
	if err := os.WriteFile(acctPath, []byte(watcherFixtureV1), 0o600); err != nil {
		t.Fatalf("writing account file: %v", err)
	}
	indexPath := filepath.Join(dir, "index")
	if err := os.WriteFile(indexPath, []byte(acctPath+"\n"), 0o600); err != nil {
		t.Fatalf("writing index: %v", err)
	}

	var mu sync.Mutex
	var reloads int
	done := make(chan struct{}, 4)
	onReload := func(result *Result, err error) {
		mu.Lock()
		reloads++
		mu.Unlock()
		if err != nil {
			t.Errorf("reload: %v", err)
		} else if len(result.Registry.All()) != 1 {
			t.Errorf("reload: expected 1 account, got %d", len(result.Registry.All()))
		}
		done <- struct{}{}
	}

	w, err := NewWatcher(indexPath, Options{}, 20*time.Millisecond, onReload)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	<-done // initial load

	if err := os.WriteFile(acctPath, []byte(watcherFixtureV2), 0o600); err != nil {
		t.Fatalf("rewriting account file: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced reload")
	}

	mu.Lock()
	defer mu.Unlock()
	if reloads < 2 {
		t.Fatalf("reloads = %d, want at least 2", reloads)
	}
}

func TestNewWatcherDefaultsDebounce(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "index")
	if err := os.WriteFile(indexPath, nil, 0o600); err != nil {
		t.Fatalf("writing index: %v", err)
	}
	w, err := NewWatcher(indexPath, Options{}, 0, func(*Result, error) {})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()
	if w.debounce != 500*time.Millisecond {
		t.Fatalf("debounce = %v, want 500ms", w.debounce)
	}
}
