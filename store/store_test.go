package store

import (
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, s Store) {
	t.Helper()

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v", ok, err)
	}
	if err := s.Set("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "v2"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get("k")
	if err != nil || !ok || v != "v2" {
		t.Errorf("Get(k) = %q, %v, %v", v, ok, err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("second delete: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("key still present after delete")
	}
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	testStore(t, NewFile(path))
}

func TestFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := NewFile(path).Set("drumPatterns", `{"a":"b"}`); err != nil {
		t.Fatal(err)
	}

	v, ok, err := NewFile(path).Get("drumPatterns")
	if err != nil || !ok || v != `{"a":"b"}` {
		t.Errorf("reopened Get = %q, %v, %v", v, ok, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	os.WriteFile(path, []byte("{oops"), 0644)
	if _, _, err := NewFile(path).Get("x"); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".config", "go-drum", "storage.json"); p != want {
		t.Errorf("DefaultPath = %q, want %q", p, want)
	}
}
