package domain

// Category classifies a user query.
type Category string

// Query categories, assigned by the classifier.
const (
	CategoryGeneral   Category = "general"
	CategorySearch    Category = "search"
	CategorySummarize Category = "summarize"
)

// DocumentRef identifies a matched document in response metadata.
// Relevance is only populated for search results.
type DocumentRef struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Relevance float64 `json:"relevance,omitempty"`
}

// Metadata carries the processing trace and any matched-document references.
type Metadata struct {
	ProcessingSteps     []string      `json:"processing_steps"`
	SearchResults       []DocumentRef `json:"search_results,omitempty"`
	SummarizedDocuments []DocumentRef `json:"summarized_documents,omitempty"`
}

// Result is the unit returned for one processed query. Constructed once per
// request, serialized, then discarded.
type Result struct {
	Type     Category `json:"type"`
	Query    string   `json:"query"`
	Response string   `json:"response"`
	Metadata Metadata `json:"metadata"`
}
