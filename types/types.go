package types

import "time"

// TranscriptChunk is one transcript segment delivered over the RTMS media
// stream. Chunks are consumed immediately by the processor, never persisted.
type TranscriptChunk struct {
	Text      string
	Speaker   string
	Timestamp time.Time
}

// ActionItem is a task extracted from conversation text.
type ActionItem struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee,omitempty"`
	Due         string `json:"due,omitempty"`
}

// SearchResult holds the answer to one information need.
type SearchResult struct {
	Query   string `json:"query"`
	Snippet string `json:"snippet"`
	Source  string `json:"source,omitempty"`
}

// Analysis is the parsed model output for one transcript window.
type Analysis struct {
	ActionItems []ActionItem
	InfoNeeds   []string
}
