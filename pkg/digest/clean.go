package digest

import (
	"regexp"
	"strings"

	"github.com/umputun/feeddigest/pkg/domain"
)

const (
	// SummaryLimit caps the raw summary length in characters
	SummaryLimit = 200
	// DefaultTitle replaces a missing item title
	DefaultTitle = "No title"
	// DateLayout is the date format used in file names and document text
	DateLayout = "2006-01-02"
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// CleanItem applies defaults, trims whitespace and truncates the summary.
// The summary is cut before any tag stripping, so a tag crossing the limit
// leaves an unterminated fragment like "<a hre" in the result.
func CleanItem(item domain.Item) domain.Item {
	res := domain.Item{
		Title:   strings.TrimSpace(item.Title),
		Link:    strings.TrimSpace(item.Link),
		Summary: TruncateSummary(strings.TrimSpace(item.Summary)),
	}
	if res.Title == "" {
		res.Title = DefaultTitle
	}
	return res
}

// TruncateSummary returns at most SummaryLimit characters of s
func TruncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= SummaryLimit {
		return s
	}
	return string(runes[:SummaryLimit])
}

// StripTags removes anything looking like a complete <...> tag and trims the result
func StripTags(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}
