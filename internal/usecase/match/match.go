// Package match scores the static document corpus against a query by
// bag-of-words term overlap. This stands in for a real vector search and is
// intentionally naive.
package match

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kailas-cloud/askflow/internal/domain"
)

var wordRe = regexp.MustCompile(`\w+`)

// Matcher scores an immutable document set against queries. Safe for
// concurrent use: the document slice is never mutated.
type Matcher struct {
	docs []domain.Document
}

// New creates a Matcher over the given documents.
func New(docs []domain.Document) *Matcher {
	return &Matcher{docs: docs}
}

// Search returns documents sharing at least one term with the query, sorted
// by descending relevance. Relevance is |query terms ∩ doc terms| / |query
// terms|. Ties keep original document order. A query with no word tokens
// yields no matches.
func (m *Matcher) Search(query string) []domain.ScoredDocument {
	queryTerms := tokenize(query)
	if len(queryTerms) == 0 {
		return nil
	}

	var results []domain.ScoredDocument
	for _, doc := range m.docs {
		docTerms := tokenize(doc.Content)

		overlap := 0
		for term := range queryTerms {
			if _, ok := docTerms[term]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}

		results = append(results, domain.ScoredDocument{
			Document:  doc,
			Relevance: float64(overlap) / float64(len(queryTerms)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	return results
}

// tokenize lowercases text and splits it into a set of word tokens, treating
// non-word characters as separators.
func tokenize(text string) map[string]struct{} {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
