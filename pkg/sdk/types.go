package askflow

import "fmt"

// Query categories as reported in QueryResult.Type.
const (
	TypeGeneral   = "general"
	TypeSearch    = "search"
	TypeSummarize = "summarize"
)

type queryRequest struct {
	Query string `json:"query"`
}

// DocumentRef identifies a matched document.
type DocumentRef struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Relevance float64 `json:"relevance,omitempty"`
}

// Metadata describes how a query was processed.
type Metadata struct {
	ProcessingSteps     []string      `json:"processing_steps"`
	SearchResults       []DocumentRef `json:"search_results,omitempty"`
	SummarizedDocuments []DocumentRef `json:"summarized_documents,omitempty"`
}

// QueryResult is the assistant's answer to a query.
type QueryResult struct {
	Type     string   `json:"type"`
	Query    string   `json:"query"`
	Response string   `json:"response"`
	Metadata Metadata `json:"metadata"`
}

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("askflow: api error %d: %s", e.Status, e.Message)
}
