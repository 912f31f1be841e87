package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/umputun/feeddigest/pkg/domain"
)

// rendering profiles
const (
	ProfilePlain    = "plain"
	ProfileEnriched = "enriched"
)

// Renderer turns fetched sections into a markdown document
type Renderer interface {
	Render(page Page) string
}

// Page holds everything a renderer needs for one digest
type Page struct {
	Date         time.Time
	Sections     []domain.Section
	ItemsPerFeed int
}

// Profiles returns the names of supported rendering profiles
func Profiles() []string {
	return []string{ProfilePlain, ProfileEnriched}
}

// NewRenderer returns the renderer for a profile name, empty name means plain
func NewRenderer(profile string) (Renderer, error) {
	switch profile {
	case "", ProfilePlain:
		return &PlainRenderer{}, nil
	case ProfileEnriched:
		return &EnrichedRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown profile %q, expected one of %s", profile, strings.Join(Profiles(), ", "))
	}
}

// displaySummary is the summary text shown under an item, markup removed and
// collapsed to a single line so it stays inside the quote
func displaySummary(item domain.Item) string {
	return singleLine(StripTags(item.Summary))
}

// itemLink formats the markdown link for an item title
func itemLink(item domain.Item) string {
	return fmt.Sprintf("[%s](%s)", escapeLinkText(item.Title), escapeLinkTarget(item.Link))
}

// errorMessage flattens an error into a single line
func errorMessage(err error) string {
	return singleLine(err.Error())
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var linkTextReplacer = strings.NewReplacer("[", `\[`, "]", `\]`, "\n", " ")

func escapeLinkText(s string) string {
	return linkTextReplacer.Replace(s)
}

var linkTargetReplacer = strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29")

func escapeLinkTarget(s string) string {
	return linkTargetReplacer.Replace(s)
}
