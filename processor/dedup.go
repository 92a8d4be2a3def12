package processor

import "strings"

// Normalize maps an action-item description to its deduplication key:
// lowercase, trimmed, internal whitespace collapsed, trailing punctuation
// stripped.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimRight(s, ".,;:!?")
	return strings.TrimSpace(s)
}

// DedupSet tracks normalized action-item descriptions seen in a session.
type DedupSet struct {
	seen map[string]struct{}
}

// NewDedupSet returns an empty set.
func NewDedupSet() *DedupSet {
	return &DedupSet{seen: make(map[string]struct{})}
}

// Add records the description and reports whether it was new. Descriptions
// that normalize to the empty string are never accepted.
func (d *DedupSet) Add(description string) bool {
	key := Normalize(description)
	if key == "" {
		return false
	}
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Len returns the number of distinct descriptions recorded.
func (d *DedupSet) Len() int {
	return len(d.seen)
}
