package llm

import (
	"strings"

	"github.com/ojusave/rtms-perplexity/types"
)

// ParseAnalysis parses the model's sectioned text response. Lines under
// "Action Items:" become ActionItems, lines under "Information Needs:"
// become queries. Unknown lines and "None" bullets are ignored, so a
// partially malformed response degrades to an empty analysis rather than
// an error.
func ParseAnalysis(content string) types.Analysis {
	var analysis types.Analysis

	const (
		sectionNone = iota
		sectionActions
		sectionNeeds
	)
	section := sectionNone

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(strings.ToLower(line), "action items"):
			section = sectionActions
			continue
		case strings.HasPrefix(strings.ToLower(line), "information needs"):
			section = sectionNeeds
			continue
		case !strings.HasPrefix(line, "-"):
			continue
		}

		bullet := strings.TrimSpace(strings.TrimPrefix(line, "-"))
		if bullet == "" || isNone(bullet) {
			continue
		}

		switch section {
		case sectionActions:
			if item, ok := parseActionItem(bullet); ok {
				analysis.ActionItems = append(analysis.ActionItems, item)
			}
		case sectionNeeds:
			analysis.InfoNeeds = append(analysis.InfoNeeds, bullet)
		}
	}

	return analysis
}

// parseActionItem parses "task | assignee: <name> | due: <when>". Missing
// fields are tolerated: a bare bullet is a description-only item.
func parseActionItem(bullet string) (types.ActionItem, bool) {
	parts := strings.Split(bullet, "|")
	item := types.ActionItem{Description: strings.TrimSpace(parts[0])}
	if item.Description == "" {
		return types.ActionItem{}, false
	}

	for _, part := range parts[1:] {
		key, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "-" || isNone(value) {
			value = ""
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "assignee":
			item.Assignee = value
		case "due":
			item.Due = value
		}
	}
	return item, true
}

func isNone(s string) bool {
	s = strings.ToLower(strings.TrimRight(strings.TrimSpace(s), "."))
	return s == "none" || s == "n/a"
}
