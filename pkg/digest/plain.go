package digest

import (
	"fmt"
	"strings"
)

// PlainRenderer produces the compact digest layout: one heading per source
// and a flat list of linked item headings with quoted summaries.
type PlainRenderer struct{}

// Render makes the plain markdown document
func (r *PlainRenderer) Render(page Page) string {
	date := page.Date.Format(DateLayout)
	lines := []string{fmt.Sprintf("# 📰 Daily RSS Digest — %s", date), ""}

	for _, sec := range page.Sections {
		lines = append(lines, "## "+sec.Source.Name, "")
		if sec.Failed() {
			lines = append(lines, fmt.Sprintf("_Error fetching feed: %s_", errorMessage(sec.Err)), "")
			continue
		}
		if sec.Empty() {
			lines = append(lines, "_No items found._", "")
			continue
		}
		for _, item := range sec.Items {
			lines = append(lines, "### "+itemLink(item))
			if summary := displaySummary(item); summary != "" {
				lines = append(lines, fmt.Sprintf("> %s…", summary))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines, "---", fmt.Sprintf("_Generated automatically on %s_", date))
	return strings.Join(lines, "\n") + "\n"
}
