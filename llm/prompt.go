package llm

import "fmt"

const analysisPromptFmt = `Analyze the following meeting transcript snippet for:
1. Action items: extract explicit or implicit action items, including tasks that need to be done
2. Information needs: ONLY identify explicit requests for information or research. Do NOT include tasks or action items as information needs.
   Example of an information need: "What was the user growth last quarter?"
   NOT an information need: "I need to report the outage" (this is a task)

Transcript:
%s

Provide your analysis in exactly this format:

Action Items:
- <task> | assignee: <name or -> | due: <when or ->

Information Needs:
- <question>

Write one bullet per line. Use "- None" under a heading when there is nothing to report.`

// BuildPrompt renders the analysis prompt for one transcript window.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(analysisPromptFmt, transcript)
}
