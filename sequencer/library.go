package sequencer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-drum/debug"
	"go-drum/store"
)

// LibraryKey is the store key holding every named pattern as one JSON object.
const LibraryKey = "drumPatterns"

var (
	ErrEmptyName       = errors.New("pattern name is empty")
	ErrPatternNotFound = errors.New("pattern not found")
)

// Library saves named share strings in a Store.
type Library struct {
	store store.Store
}

func NewLibrary(s store.Store) *Library {
	return &Library{store: s}
}

// Save upserts name with the encoded pattern
func (l *Library) Save(name, encoded string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	all, err := l.all()
	if err != nil {
		return err
	}
	all[name] = encoded
	debug.Log("library", "save %q", name)
	return l.put(all)
}

// Get returns the encoded pattern saved under name
func (l *Library) Get(name string) (string, error) {
	all, err := l.all()
	if err != nil {
		return "", err
	}
	encoded, ok := all[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrPatternNotFound, name)
	}
	return encoded, nil
}

// Delete removes name; deleting a missing name is not an error
func (l *Library) Delete(name string) error {
	all, err := l.all()
	if err != nil {
		return err
	}
	if _, ok := all[name]; !ok {
		return nil
	}
	delete(all, name)
	debug.Log("library", "delete %q", name)
	return l.put(all)
}

// List returns saved names sorted alphabetically
func (l *Library) List() ([]string, error) {
	all, err := l.all()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (l *Library) all() (map[string]string, error) {
	all := make(map[string]string)
	raw, ok, err := l.store.Get(LibraryKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", LibraryKey, err)
	}
	if !ok || raw == "" {
		return all, nil
	}
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, fmt.Errorf("parse %s: %w", LibraryKey, err)
	}
	return all, nil
}

func (l *Library) put(all map[string]string) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return err
	}
	if err := l.store.Set(LibraryKey, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", LibraryKey, err)
	}
	return nil
}

// SaveTo stores the engine's current pattern under name
func (e *Engine) SaveTo(l *Library, name string) error {
	return l.Save(name, e.Encode())
}

// LoadFrom replaces the engine state with the pattern saved under name. An
// invalid saved pattern leaves the current state untouched.
func (e *Engine) LoadFrom(l *Library, name string) error {
	encoded, err := l.Get(name)
	if err != nil {
		return err
	}
	if err := e.Load(encoded); err != nil {
		return fmt.Errorf("load %q: %w", name, err)
	}
	return nil
}
