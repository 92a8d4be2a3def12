package processor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ojusave/rtms-perplexity/types"
)

// Analyzer extracts action items and information needs from a transcript window.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) (types.Analysis, error)
}

// Searcher resolves an information need against a search API. The meeting
// context is the transcript chunk that triggered the need.
type Searcher interface {
	Search(ctx context.Context, query, meetingContext string) (types.SearchResult, error)
}

// Store retains accepted action items for a meeting.
type Store interface {
	Save(ctx context.Context, meetingUUID string, item types.ActionItem) error
}

// Publisher mirrors pipeline output to observers such as the live feed.
type Publisher interface {
	PublishActionItem(meetingUUID string, item types.ActionItem)
	PublishSearchResult(meetingUUID string, result types.SearchResult)
}

// Processor owns the rolling transcript history and deduplication set for a
// single meeting session. Chunks are handled strictly one at a time: the
// analyzer and any searches complete before the next chunk is accepted.
type Processor struct {
	meetingUUID string
	window      *Window[types.TranscriptChunk]
	dedup       *DedupSet
	analyzer    Analyzer
	searcher    Searcher
	store       Store
	publisher   Publisher
}

// New builds a processor for one meeting. store and publisher may be nil.
func New(meetingUUID string, historySize int, analyzer Analyzer, searcher Searcher, store Store, publisher Publisher) *Processor {
	return &Processor{
		meetingUUID: meetingUUID,
		window:      NewWindow[types.TranscriptChunk](historySize),
		dedup:       NewDedupSet(),
		analyzer:    analyzer,
		searcher:    searcher,
		store:       store,
		publisher:   publisher,
	}
}

// HandleChunk appends the chunk to the rolling history, analyzes the merged
// window, accepts any new action items and resolves information needs.
// Analyzer and searcher failures are logged and the pipeline keeps going.
func (p *Processor) HandleChunk(ctx context.Context, chunk types.TranscriptChunk) {
	if strings.TrimSpace(chunk.Text) == "" {
		return
	}
	if chunk.Speaker != "" {
		log.Printf("transcript[%s] %s: %s", p.meetingUUID, chunk.Speaker, chunk.Text)
	} else {
		log.Printf("transcript[%s]: %s", p.meetingUUID, chunk.Text)
	}

	p.window.Append(chunk)

	analysis, err := p.analyzer.Analyze(ctx, p.windowText())
	if err != nil {
		log.Printf("processor: analyze failed: %v", err)
		return
	}

	for _, item := range analysis.ActionItems {
		if !p.dedup.Add(item.Description) {
			continue
		}
		fmt.Println(FormatActionItem(item))
		if p.store != nil {
			if err := p.store.Save(ctx, p.meetingUUID, item); err != nil {
				log.Printf("processor: saving action item failed: %v", err)
			}
		}
		if p.publisher != nil {
			p.publisher.PublishActionItem(p.meetingUUID, item)
		}
	}

	for _, query := range analysis.InfoNeeds {
		if p.searcher == nil {
			break
		}
		log.Printf("processor: searching for information: %s", query)
		result, err := p.searcher.Search(ctx, query, chunk.Text)
		if err != nil {
			log.Printf("processor: search failed: %v", err)
			continue
		}
		fmt.Println(FormatSearchResult(result))
		if p.publisher != nil {
			p.publisher.PublishSearchResult(p.meetingUUID, result)
		}
	}
}

// History returns the buffered chunks, oldest first.
func (p *Processor) History() []types.TranscriptChunk {
	return p.window.Items()
}

func (p *Processor) windowText() string {
	chunks := p.window.Items()
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	return strings.Join(texts, " ")
}

// FormatActionItem renders an accepted action item for console display.
func FormatActionItem(item types.ActionItem) string {
	var b strings.Builder
	b.WriteString("New Action Item: ")
	b.WriteString(item.Description)
	if item.Assignee != "" {
		b.WriteString(" [assignee: " + item.Assignee + "]")
	}
	if item.Due != "" {
		b.WriteString(" [due: " + item.Due + "]")
	}
	return b.String()
}

// FormatSearchResult renders a search result for console display.
func FormatSearchResult(r types.SearchResult) string {
	if strings.TrimSpace(r.Snippet) == "" {
		return fmt.Sprintf("Search Results for %q: no relevant information found.", r.Query)
	}
	return fmt.Sprintf("Search Results for %q:\n%s", r.Query, r.Snippet)
}
