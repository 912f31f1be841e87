// Package digest builds the dated reading digest from a list of feed sources.
// Sources are fetched one by one in configured order; a failing source never
// blocks the others, it renders as an inline error placeholder instead.
package digest

import (
	"context"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feeddigest/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

const (
	// DefaultItemsPerFeed is the item cap used when none is configured
	DefaultItemsPerFeed = 5
	// DefaultTimeout bounds a single source fetch
	DefaultTimeout = 30 * time.Second
)

// Fetcher retrieves the entries of a single feed
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]domain.Item, error)
}

// Options defines builder parameters, zero values are replaced by defaults
type Options struct {
	ItemsPerFeed int
	Timeout      time.Duration
	Renderer     Renderer
}

// Builder fetches sources and renders them into a digest document
type Builder struct {
	fetcher      Fetcher
	renderer     Renderer
	itemsPerFeed int
	timeout      time.Duration
}

// Report is the result of a single build
type Report struct {
	Date     time.Time
	Text     string
	Sections []domain.Section
}

// Failures returns sections whose source could not be fetched, in source order
func (r Report) Failures() []domain.Section {
	var res []domain.Section
	for _, s := range r.Sections {
		if s.Failed() {
			res = append(res, s)
		}
	}
	return res
}

// NewBuilder makes a digest builder for the given fetcher
func NewBuilder(fetcher Fetcher, opts Options) *Builder {
	if opts.ItemsPerFeed <= 0 {
		opts.ItemsPerFeed = DefaultItemsPerFeed
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Renderer == nil {
		opts.Renderer = &PlainRenderer{}
	}
	return &Builder{
		fetcher:      fetcher,
		renderer:     opts.Renderer,
		itemsPerFeed: opts.ItemsPerFeed,
		timeout:      opts.Timeout,
	}
}

// Build fetches every source in order and renders the digest for date.
// The document is fully assembled in memory, nothing is written here.
func (b *Builder) Build(ctx context.Context, date time.Time, sources []domain.Source) Report {
	sections := make([]domain.Section, 0, len(sources))
	for _, src := range sources {
		sections = append(sections, b.fetchSection(ctx, src))
	}

	report := Report{
		Date:     date,
		Sections: sections,
		Text:     b.renderer.Render(Page{Date: date, Sections: sections, ItemsPerFeed: b.itemsPerFeed}),
	}
	if failed := len(report.Failures()); failed > 0 {
		lgr.Printf("[WARN] digest for %s built with %d of %d sources failed", date.Format(DateLayout), failed, len(sources))
	}
	return report
}

// fetchSection fetches a single source under its own timeout and cleans the taken items
func (b *Builder) fetchSection(ctx context.Context, src domain.Source) domain.Section {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	lgr.Printf("[DEBUG] fetching %s from %s", src.Name, src.URL)
	items, err := b.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch %s: %v", src.Name, err)
		return domain.Section{Source: src, Err: err}
	}

	taken := items
	if len(taken) > b.itemsPerFeed {
		taken = taken[:b.itemsPerFeed]
	}
	cleaned := make([]domain.Item, 0, len(taken))
	for _, item := range taken {
		cleaned = append(cleaned, CleanItem(item))
	}

	lgr.Printf("[INFO] fetched %d items from %s, %d taken", len(items), src.Name, len(cleaned))
	return domain.Section{Source: src, Items: cleaned}
}
