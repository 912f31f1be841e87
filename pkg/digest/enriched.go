package digest

import (
	"fmt"
	"strings"
	"unicode"
)

// sectionIcons cycle over sources by position
var sectionIcons = []string{"🔵", "🟢", "🟠", "🟣", "🔴", "🟡", "⚪"}

const (
	enrichedTitle = "📰 Daily Digest"
	contentsTitle = "🗂 Contents"
	humanDate     = "Monday, January 02 2006"
)

// EnrichedRenderer produces the presentation-heavy layout with a banner,
// table of contents, numbered items and a back-to-top footer.
type EnrichedRenderer struct{}

// SectionIcon returns the badge for the source at position idx
func SectionIcon(idx int) string {
	return sectionIcons[idx%len(sectionIcons)]
}

// Render makes the enriched markdown document
func (r *EnrichedRenderer) Render(page Page) string {
	date := page.Date.Format(DateLayout)
	_, week := page.Date.ISOWeek()

	slugs := newSlugger()
	topAnchor := slugs.slug(enrichedTitle)
	slugs.slug(contentsTitle)
	headings := make([]string, len(page.Sections))
	anchors := make([]string, len(page.Sections))
	for i, sec := range page.Sections {
		headings[i] = SectionIcon(i) + " " + sec.Source.Name
		anchors[i] = slugs.slug(headings[i])
	}

	lines := []string{
		`<div align="center">`,
		"",
		"# " + enrichedTitle,
		fmt.Sprintf("### %s &nbsp;•&nbsp; Week %02d", page.Date.Format(humanDate), week),
		"",
		fmt.Sprintf("![sources](https://img.shields.io/badge/sources-%d-blue?style=flat-square) "+
			"![articles](https://img.shields.io/badge/articles%%20per%%20feed-%d-green?style=flat-square) "+
			"![auto](https://img.shields.io/badge/auto--generated-✓-lightgrey?style=flat-square)",
			len(page.Sections), page.ItemsPerFeed),
		"",
		"</div>",
		"",
		"---",
		"",
		"## " + contentsTitle,
		"",
	}

	for i, sec := range page.Sections {
		lines = append(lines, fmt.Sprintf("- [%s](#%s)", escapeLinkText(sec.Source.Name), anchors[i]))
	}
	lines = append(lines, "", "---", "")

	for i, sec := range page.Sections {
		lines = append(lines, "## "+headings[i], "")
		switch {
		case sec.Failed():
			lines = append(lines, fmt.Sprintf("> ⚠️ _Error fetching feed: %s_", errorMessage(sec.Err)))
		case sec.Empty():
			lines = append(lines, "> _No items found today._")
		default:
			for j, item := range sec.Items {
				lines = append(lines, fmt.Sprintf("#### %d. %s", j+1, itemLink(item)))
				if summary := displaySummary(item); summary != "" {
					lines = append(lines, fmt.Sprintf("> %s…", summary))
				}
				lines = append(lines, "")
				if j < len(sec.Items)-1 {
					lines = append(lines, "<br>", "")
				}
			}
		}
		lines = append(lines, "", "---", "")
	}

	lines = append(lines,
		`<div align="center">`,
		"",
		fmt.Sprintf("_Generated automatically on %s_", date),
		"",
		fmt.Sprintf("⬆️ [Back to top](#%s)", topAnchor),
		"",
		"</div>",
	)
	return strings.Join(lines, "\n") + "\n"
}

// slugger makes GitHub compatible heading anchors, repeated headings get a numeric suffix
type slugger struct {
	seen map[string]int
}

func newSlugger() *slugger {
	return &slugger{seen: map[string]int{}}
}

func (s *slugger) slug(heading string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(heading) {
		switch {
		case r == ' ':
			b.WriteRune('-')
		case r == '-', unicode.IsLetter(r), unicode.IsNumber(r), unicode.Is(unicode.M, r), unicode.Is(unicode.Pc, r):
			b.WriteRune(r)
		}
	}
	base := b.String()
	n, ok := s.seen[base]
	s.seen[base] = n + 1
	if !ok {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
