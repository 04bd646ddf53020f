package match

import (
	"regexp"
	"strings"
)

// Trigger-phrase stripping. Each pattern removes everything up to and
// including the leftmost trigger phrase and its trailing whitespace; when no
// trigger is present the query passes through unchanged (minus surrounding
// whitespace).
var (
	searchTriggerRe    = regexp.MustCompile(`(?i)^.*?(find|search|look for|documents about|information on)\s+`)
	summarizeTailRe    = regexp.MustCompile(`(?i)summarize\s+(.*)`)
	summarizeTriggerRe = regexp.MustCompile(`(?i)^.*?(summarize|summary|summarization|brief overview)\s+`)
)

// SearchTopic extracts the residual topic from a search query: strips the
// leftmost trigger phrase, trims whitespace, and drops a single trailing
// question mark.
func SearchTopic(query string) string {
	topic := strings.TrimSpace(searchTriggerRe.ReplaceAllString(query, ""))
	topic = strings.TrimSuffix(topic, "?")
	return topic
}

// SummarizeTopic extracts the subject of a summarization query. Text after
// the literal word "summarize" wins; otherwise the leftmost summarize-family
// trigger phrase is stripped.
func SummarizeTopic(query string) string {
	if m := summarizeTailRe.FindStringSubmatch(query); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(summarizeTriggerRe.ReplaceAllString(query, ""))
}
