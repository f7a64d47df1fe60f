package sequencer

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go-drum/store"
)

func TestLibrarySaveListDelete(t *testing.T) {
	lib := NewLibrary(store.NewMemory())

	names, err := lib.List()
	if err != nil || len(names) != 0 {
		t.Fatalf("empty library: %v, %v", names, err)
	}

	enc := "4|120|webaudio" + allOff(16)
	for _, n := range []string{"verse", "chorus", "bridge"} {
		if err := lib.Save(n, enc); err != nil {
			t.Fatal(err)
		}
	}
	if err := lib.Save("  ", enc); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name: err = %v", err)
	}

	names, _ = lib.List()
	if want := []string{"bridge", "chorus", "verse"}; !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}

	// upsert
	enc2 := "2|90|808" + allOff(8)
	lib.Save("verse", enc2)
	if got, _ := lib.Get("verse"); got != enc2 {
		t.Errorf("Get(verse) = %q, want %q", got, enc2)
	}

	if err := lib.Delete("chorus"); err != nil {
		t.Fatal(err)
	}
	if err := lib.Delete("missing"); err != nil {
		t.Errorf("delete missing: %v", err)
	}
	if _, err := lib.Get("chorus"); !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("Get(chorus) err = %v, want ErrPatternNotFound", err)
	}
	names, _ = lib.List()
	if want := []string{"bridge", "verse"}; !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}
}

func TestLibraryUsesSingleKey(t *testing.T) {
	kv := store.NewMemory()
	lib := NewLibrary(kv)
	lib.Save("a", "x")

	raw, ok, _ := kv.Get(LibraryKey)
	if !ok || raw != `{"a":"x"}` {
		t.Errorf("stored %q under %s", raw, LibraryKey)
	}
}

func TestLibraryCorruptStore(t *testing.T) {
	kv := store.NewMemory()
	kv.Set(LibraryKey, "not json")
	lib := NewLibrary(kv)
	if _, err := lib.List(); err == nil {
		t.Error("expected parse error")
	}
}

func TestEngineLibraryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	lib := NewLibrary(store.NewFile(path))

	e := NewEngine(DefaultSettings(), &fakeScheduler{})
	e.Toggle(Kick, 0, true)
	e.SetTempo(133)
	if err := e.SaveTo(lib, "groove"); err != nil {
		t.Fatal(err)
	}
	saved := e.Encode()

	e.Clear()
	if err := e.LoadFrom(lib, "groove"); err != nil {
		t.Fatal(err)
	}
	if got := e.Encode(); got != saved {
		t.Errorf("loaded %q, want %q", got, saved)
	}

	// a fresh library over the same file sees the pattern
	names, _ := NewLibrary(store.NewFile(path)).List()
	if len(names) != 1 || names[0] != "groove" {
		t.Errorf("names = %v", names)
	}

	lib.Save("broken", "4|120|webaudio|0")
	if err := e.LoadFrom(lib, "broken"); !errors.Is(err, ErrMalformedFieldCount) {
		t.Errorf("err = %v, want ErrMalformedFieldCount", err)
	}
	if got := e.Encode(); got != saved {
		t.Error("invalid saved pattern changed the state")
	}
}

func TestShareURL(t *testing.T) {
	enc := "4|120|webaudio" + allOff(16)

	u := ShareURL("https://example.com/drums/?p=old#top", enc)
	if !strings.HasPrefix(u, "https://example.com/drums/?p=4%7C120%7Cwebaudio") {
		t.Errorf("ShareURL = %q", u)
	}
	if got := ParseShareURL(u); got != enc {
		t.Errorf("ParseShareURL(ShareURL) = %q", got)
	}

	// unescaped form as typed into a browser
	raw := "https://example.com/?p=" + enc
	if got := ParseShareURL(raw); got != enc {
		t.Errorf("ParseShareURL(raw) = %q", got)
	}
	if got := ParseShareURL("p=" + enc); got != enc {
		t.Errorf("ParseShareURL(query) = %q", got)
	}
	if got := ParseShareURL("  " + enc + "\n"); got != enc {
		t.Errorf("ParseShareURL(bare) = %q", got)
	}
}

func TestExportImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "beat.txt")

	e := NewEngine(Settings{TimeSignature: 5, Tempo: 77, Kit: Kit808}, &fakeScheduler{})
	e.Toggle(Ride, 19, false)
	if err := e.ExportFile(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != e.Encode() {
		t.Errorf("file content = %q", data)
	}

	// trailing newline from an editor is trimmed
	os.WriteFile(path, append(data, '\n', '\n'), 0644)

	other := NewEngine(DefaultSettings(), &fakeScheduler{})
	if err := other.ImportFile(path); err != nil {
		t.Fatal(err)
	}
	if other.Encode() != e.Encode() {
		t.Errorf("imported %q, want %q", other.Encode(), e.Encode())
	}

	bad := filepath.Join(dir, "bad.txt")
	os.WriteFile(bad, []byte("garbage"), 0644)
	before := other.Encode()
	if err := other.ImportFile(bad); !errors.Is(err, ErrMalformedFieldCount) {
		t.Errorf("err = %v, want ErrMalformedFieldCount", err)
	}
	if other.Encode() != before {
		t.Error("invalid file changed the state")
	}
	if err := other.ImportFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
