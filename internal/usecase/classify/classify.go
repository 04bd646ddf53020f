// Package classify assigns a category to a raw user query.
package classify

import (
	"strings"

	"github.com/kailas-cloud/askflow/internal/domain"
)

// Trigger keyword lists. Search is checked before summarize, so a query
// containing triggers from both lists classifies as search.
var (
	searchTriggers    = []string{"find", "search", "look for", "documents about", "information on"}
	summarizeTriggers = []string{"summarize", "summary", "summarization", "brief overview"}
)

// Detect returns exactly one category for any input, including the empty
// string (which yields general). Matching is case-insensitive substring
// containment, first list wins.
func Detect(query string) domain.Category {
	lower := strings.ToLower(query)

	if containsAny(lower, searchTriggers) {
		return domain.CategorySearch
	}
	if containsAny(lower, summarizeTriggers) {
		return domain.CategorySummarize
	}
	return domain.CategoryGeneral
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
