// Package archive maintains the running index document linking every digest.
// The index is a header, a separator line and entry lines, newest first.
// Updates are read-modify-write on a single file, concurrent writers are not supported.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-pkgz/lgr"
)

const (
	// FileName is the name of the index document inside the output directory
	FileName = "index.md"
	// Title is the header line of a new index
	Title = "# Digest Archive"
	// Separator splits the header from the entries
	Separator = "---"
)

var entryRe = regexp.MustCompile(`^- \[([^\]]+)\]\(([^)]*)\)$`)

// Entry links a digest date to its document
type Entry struct {
	Date string
	File string
}

// String returns the markdown list line for the entry
func (e Entry) String() string {
	return fmt.Sprintf("- [%s](%s)", e.Date, e.File)
}

// line is a body line of the index, entry is nil for lines kept verbatim
type line struct {
	text  string
	entry *Entry
}

// Index is the parsed archive document
type Index struct {
	header []string // lines up to and including the separator
	body   []line
}

// New makes an empty index with the default header
func New() *Index {
	return &Index{header: []string{Title, "", Separator}}
}

// Parse reads index text. The header ends at the first separator line, if there is
// no separator at all the whole text becomes the header and a separator is added.
func Parse(text string) *Index {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if text == "" {
		lines = nil
	}

	sep := -1
	for i, l := range lines {
		if strings.TrimRight(l, " \t\r") == Separator {
			sep = i
			break
		}
	}
	if sep < 0 {
		header := append(lines, Separator) //nolint:gocritic // lines is not used after this
		return &Index{header: header}
	}

	idx := &Index{header: lines[:sep+1]}
	for _, l := range lines[sep+1:] {
		bl := line{text: l}
		if m := entryRe.FindStringSubmatch(strings.TrimRight(l, " \t\r")); m != nil {
			bl.entry = &Entry{Date: m[1], File: m[2]}
		}
		idx.body = append(idx.body, bl)
	}
	return idx
}

// Load reads the index at path, a missing file gives a new empty index
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is built from configured output directory
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Entries returns all entries in document order
func (ix *Index) Entries() []Entry {
	var res []Entry
	for _, l := range ix.body {
		if l.entry != nil {
			res = append(res, *l.entry)
		}
	}
	return res
}

// Has reports whether an entry for date is already recorded
func (ix *Index) Has(date string) bool {
	for _, l := range ix.body {
		if l.entry != nil && l.entry.Date == date {
			return true
		}
	}
	return false
}

// Add inserts the entry right after the separator, ahead of all older entries.
// Returns false and leaves the index unchanged if the date is already present.
func (ix *Index) Add(e Entry) bool {
	if ix.Has(e.Date) {
		return false
	}
	ix.body = append([]line{{text: e.String(), entry: &e}}, ix.body...)
	return true
}

// String renders the index document
func (ix *Index) String() string {
	lines := make([]string, 0, len(ix.header)+len(ix.body))
	lines = append(lines, ix.header...)
	for _, l := range ix.body {
		lines = append(lines, l.text)
	}
	return strings.Join(lines, "\n") + "\n"
}

// Save writes the index to path via a temporary file in the same directory.
// An existing index keeps its permissions, a new one is created with 0644.
func (ix *Index) Save(path string) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".index-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	if _, err := tmp.WriteString(ix.String()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp index: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod temp index: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace index %s: %w", path, err)
	}
	return nil
}

// Update records the digest file for date in the index at path.
// Returns false if the date was already listed, the file is not rewritten then.
func Update(path, date, filename string) (bool, error) {
	ix, err := Load(path)
	if err != nil {
		return false, err
	}
	if !ix.Add(Entry{Date: date, File: filename}) {
		lgr.Printf("[INFO] index %s already lists %s", path, date)
		return false, nil
	}
	if err := ix.Save(path); err != nil {
		return false, err
	}
	lgr.Printf("[DEBUG] index %s updated with %s, %d entries", path, date, len(ix.Entries()))
	return true, nil
}
