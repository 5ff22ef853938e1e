package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Token(); ok {
		t.Fatal("expected no token in a fresh store")
	}

	if err := s.SetToken("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token, ok := s.Token()
	if !ok || token != "abc" {
		t.Errorf("expected token abc, got %q (present=%v)", token, ok)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Token(); ok {
		t.Error("expected no token after clear")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := NewFileStore(path)

	if _, ok := s.Token(); ok {
		t.Fatal("expected no token before first write")
	}

	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}

	// A second store over the same path sees the persisted token.
	token, ok := NewFileStore(path).Token()
	if !ok || token != "tok-123" {
		t.Errorf("expected persisted token, got %q (present=%v)", token, ok)
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewFileStore(path)

	if err := s.Clear(); err != nil {
		t.Fatalf("clearing an absent token should not fail: %v", err)
	}

	if err := s.SetToken("tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Token(); ok {
		t.Error("expected no token after clear")
	}
}
