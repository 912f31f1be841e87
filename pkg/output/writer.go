// Package output persists rendered digests into the output directory.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pkgz/lgr"
)

// Writer stores digest documents under a single directory
type Writer struct {
	dir  string
	html *HTMLRenderer // nil disables the html companion
}

// NewWriter makes a writer for dir, html companion files are written when withHTML is set
func NewWriter(dir string, withHTML bool) *Writer {
	w := &Writer{dir: dir}
	if withHTML {
		w.html = NewHTMLRenderer()
	}
	return w
}

// Dir returns the output directory
func (w *Writer) Dir() string {
	return w.dir
}

// DigestName returns the markdown file name for a digest date
func DigestName(date string) string {
	return date + ".md"
}

// Prepare creates the output directory if it does not exist
func (w *Writer) Prepare() error {
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return fmt.Errorf("create output directory %s: %w", w.dir, err)
	}
	return nil
}

// Write stores the markdown digest for date and the html companion if enabled.
// Returns the paths of written files, markdown first.
func (w *Writer) Write(date, markdown string) ([]string, error) {
	mdPath := filepath.Join(w.dir, DigestName(date))
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil { //nolint:gosec // digest is a public document
		return nil, fmt.Errorf("write digest %s: %w", mdPath, err)
	}
	lgr.Printf("[DEBUG] digest saved to %s, %d bytes", mdPath, len(markdown))
	paths := []string{mdPath}

	if w.html == nil {
		return paths, nil
	}

	page, err := w.html.Render("Daily Digest "+date, markdown)
	if err != nil {
		return paths, fmt.Errorf("render html for %s: %w", date, err)
	}
	htmlPath := filepath.Join(w.dir, date+".html")
	if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil { //nolint:gosec // digest is a public document
		return paths, fmt.Errorf("write html digest %s: %w", htmlPath, err)
	}
	lgr.Printf("[DEBUG] html digest saved to %s", htmlPath)
	return append(paths, htmlPath), nil
}
