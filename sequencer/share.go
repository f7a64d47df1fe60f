package sequencer

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"go-drum/debug"
)

// ShareParam is the query parameter carrying the share string
const ShareParam = "p"

// DefaultExportName is the file name used when exporting without a path
const DefaultExportName = "drum-pattern.txt"

// ShareURL appends the share string to base, replacing any query.
func ShareURL(base, encoded string) string {
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	return base + "?" + ShareParam + "=" + url.QueryEscape(encoded)
}

// ParseShareURL extracts the share string from a URL or bare query string.
// Text without a p= parameter is returned unchanged so plain share strings
// pass through.
func ParseShareURL(text string) string {
	text = strings.TrimSpace(text)
	query := text
	if i := strings.IndexByte(text, '?'); i >= 0 {
		query = text[i+1:]
	} else if !strings.HasPrefix(text, ShareParam+"=") {
		return text
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return text
	}
	if p := values.Get(ShareParam); p != "" {
		return p
	}
	return text
}

// ExportFile writes the share string as the whole content of path
func (e *Engine) ExportFile(path string) error {
	if path == "" {
		path = DefaultExportName
	}
	if err := os.WriteFile(path, []byte(e.Encode()), 0644); err != nil {
		return fmt.Errorf("export pattern: %w", err)
	}
	debug.Log("file", "exported %s", path)
	return nil
}

// ImportFile loads a pattern file, trimming surrounding whitespace. An
// invalid file leaves the current state untouched.
func (e *Engine) ImportFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("import pattern: %w", err)
	}
	if err := e.Load(strings.TrimSpace(string(data))); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	debug.Log("file", "imported %s", path)
	return nil
}
