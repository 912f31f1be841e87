package domain

// Item represents a single entry taken from a feed
type Item struct {
	Title   string
	Link    string
	Summary string // raw summary, may contain markup
}
