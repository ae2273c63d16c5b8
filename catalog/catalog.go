// Package catalog loads the ordered list of presentations processed by the queue.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/spf13/afero"
)

// Entry is one presentation of the catalog.
type Entry struct {
	Name string `json:"name" jsonschema:"description=Human-readable name used to build output file names."`
	URL  string `json:"url" jsonschema:"description=URL of the presentation manifest (master.json)."`
}

// IsSentinel reports whether the entry marks the end of the list.
func (e Entry) IsSentinel() bool {
	return e.Name == "" && e.URL == ""
}

func (e Entry) String() string {
	return e.Name
}

// Catalog is an immutable, position-indexed list of entries.
type Catalog struct {
	entries []Entry
}

// New copies entries into a catalog.
func New(entries []Entry) Catalog {
	return Catalog{entries: append([]Entry(nil), entries...)}
}

// At returns the entry at index i. ok is false past the end of the list or at
// the first sentinel entry, which both end iteration.
func (c Catalog) At(i int) (entry Entry, ok bool) {
	if i < 0 || i >= len(c.entries) {
		return Entry{}, false
	}
	entry = c.entries[i]
	if entry.IsSentinel() {
		return Entry{}, false
	}
	return entry, true
}

// Entries returns the usable entries, stopping at the first sentinel.
func (c Catalog) Entries() []Entry {
	for i, e := range c.entries {
		if e.IsSentinel() {
			return append([]Entry(nil), c.entries[:i]...)
		}
	}
	return append([]Entry(nil), c.entries...)
}

// Len is the number of usable entries.
func (c Catalog) Len() int {
	return len(c.Entries())
}

// Append returns a new catalog with e added after the last usable entry.
func (c Catalog) Append(e Entry) Catalog {
	return New(append(c.Entries(), e))
}

// escapedAmpersand is how some page dumps serialize '&' inside manifest URLs.
const escapedAmpersand = `\u0026`

// DecodeURL turns literal \u0026 sequences into '&'.
func DecodeURL(raw string) string {
	return strings.ReplaceAll(raw, escapedAmpersand, "&")
}

// Load reads a JSON array of entries from path.
func Load(fs afero.Fs, path string, decodeEscapes bool) (Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	for i := range entries {
		entries[i].Name = strings.TrimSpace(entries[i].Name)
		entries[i].URL = strings.TrimSpace(entries[i].URL)
		if decodeEscapes {
			entries[i].URL = DecodeURL(entries[i].URL)
		}
	}

	return Catalog{entries: entries}, nil
}

// LoadOrEmpty behaves like Load but treats a missing file as an empty catalog.
func LoadOrEmpty(fs afero.Fs, path string, decodeEscapes bool) (Catalog, error) {
	c, err := Load(fs, path, decodeEscapes)
	if errors.Is(err, os.ErrNotExist) {
		return Catalog{}, nil
	}
	return c, err
}

// Save writes the usable entries to path through a temporary file.
func Save(fs afero.Fs, path string, c Catalog) error {
	data, err := json.MarshalIndent(c.Entries(), "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return fs.Rename(tmp, path)
}

// Schema describes the catalog file format.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	return reflector.Reflect([]Entry{})
}
