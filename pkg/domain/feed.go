package domain

// Source represents a configured news feed contributing one section to a digest
type Source struct {
	Name string
	URL  string
}

// Section is the outcome of fetching a single source, either items or a failure
type Section struct {
	Source Source
	Items  []Item
	Err    error
}

// Failed reports whether the source could not be fetched
func (s Section) Failed() bool {
	return s.Err != nil
}

// Empty reports whether the source was fetched but returned no items
func (s Section) Empty() bool {
	return s.Err == nil && len(s.Items) == 0
}
