package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cryptoutil "hrconsole/internal/platform/crypto"
)

func newFileStore(t *testing.T, passphrase string) *FileStore {
	t.Helper()
	service, err := cryptoutil.New(passphrase)
	if err != nil {
		t.Fatalf("crypto service: %v", err)
	}
	store, err := NewFileStore(t.TempDir(), service)
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newFileStore(t, "passphrase")
	if err := store.Set("session/identity", `{"role":"admin"}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := store.Get("session/identity")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != `{"role":"admin"}` {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestFileStoreEncryptsAtRest(t *testing.T) {
	service, err := cryptoutil.New("passphrase")
	if err != nil {
		t.Fatalf("crypto service: %v", err)
	}
	dir := t.TempDir()
	store, err := NewFileStore(dir, service)
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	if err := store.Set("session/identity", "sensitive-token"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one state file, got %d", len(entries))
	}
	raw, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("read state file: %v", err)
	}
	if bytes.Contains(raw, []byte("sensitive-token")) {
		t.Fatal("plaintext leaked to disk")
	}
}

func TestFileStoreGetMissingKey(t *testing.T) {
	store := newFileStore(t, "")
	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreDeleteIsIdempotent(t *testing.T) {
	store := newFileStore(t, "")
	if err := store.Delete("missing"); err != nil {
		t.Fatalf("delete of a missing key must not fail: %v", err)
	}
}

func TestFileStoreClearRemovesEveryKey(t *testing.T) {
	store := newFileStore(t, "passphrase")
	keys := []string{"session/identity", "cache/employees/c1", "cache/shifts/c1"}
	for _, key := range keys {
		if err := store.Set(key, "value"); err != nil {
			t.Fatalf("set failed: %v", err)
		}
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	for _, key := range keys {
		if _, err := store.Get(key); !errors.Is(err, ErrNotFound) {
			t.Fatalf("key %q survived clear", key)
		}
	}
}

func TestFileStoreKeyEncoding(t *testing.T) {
	store := newFileStore(t, "")
	// Keys contain slashes; they must never become directory traversal.
	if err := store.Set("cache/../escape", "value"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	path := store.path("cache/../escape")
	if filepath.Dir(path) != store.dir {
		t.Fatalf("key escaped the state dir: %s", path)
	}
	if strings.Contains(filepath.Base(path), "..") {
		t.Fatal("encoded filename carries traversal segments")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := store.Get("k")
	if err != nil || value != "v" {
		t.Fatalf("get = %q, %v", value, err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := store.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatal("clear did not remove the key")
	}
}
