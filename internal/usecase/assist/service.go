// Package assist routes a classified query through the matching pipeline,
// builds the prompt, and calls the inference service.
package assist

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askflow/internal/domain"
	"github.com/kailas-cloud/askflow/internal/usecase/classify"
	"github.com/kailas-cloud/askflow/internal/usecase/match"
)

// System prompts per branch.
const (
	generalSystemPrompt = "You are a helpful AI assistant. Provide accurate and concise information."
	searchSystemPrompt  = "You are a helpful AI assistant. Use the provided document context to answer " +
		"the question. If the context doesn't contain relevant information, say so and provide a general response."
	summarizeSystemPrompt = "You are a helpful AI assistant. Provide a concise summary of the given content."
)

// contextDocs is how many top-ranked documents feed the prompt.
const contextDocs = 2

// LLMClient issues a single blocking generate request.
type LLMClient interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// Service processes queries end to end. Stateless across requests.
type Service struct {
	llm     LLMClient
	matcher *match.Matcher
	logger  *zap.Logger
}

// New creates an assist service over the given LLM client and matcher.
func New(llm LLMClient, matcher *match.Matcher, logger *zap.Logger) *Service {
	return &Service{llm: llm, matcher: matcher, logger: logger}
}

// Process classifies the query and dispatches to the matching branch. It
// never fails: upstream LLM errors are absorbed into the response text so
// the HTTP contract stays uniform.
func (s *Service) Process(ctx context.Context, query string) domain.Result {
	switch classify.Detect(query) {
	case domain.CategorySearch:
		return s.processSearch(ctx, query)
	case domain.CategorySummarize:
		return s.processSummarize(ctx, query)
	default:
		return s.processGeneral(ctx, query)
	}
}

func (s *Service) processGeneral(ctx context.Context, query string) domain.Result {
	return domain.Result{
		Type:     domain.CategoryGeneral,
		Query:    query,
		Response: s.complete(ctx, query, generalSystemPrompt),
		Metadata: domain.Metadata{
			ProcessingSteps: []string{"LLM query"},
		},
	}
}

func (s *Service) processSearch(ctx context.Context, query string) domain.Result {
	topic := match.SearchTopic(query)
	matches := s.matcher.Search(topic)

	if len(matches) == 0 {
		// Fall back to the general branch. The result keeps the general
		// type tag, matching the original behavior.
		result := s.processGeneral(ctx, query)
		result.Metadata.ProcessingSteps = append(result.Metadata.ProcessingSteps, "Document search (no results)")
		return result
	}

	top := matches
	if len(top) > contextDocs {
		top = top[:contextDocs]
	}

	prompt := "Context:\n" + contextBlock(top) + "\n\nQuestion: " + query + "\n\nAnswer:"

	refs := make([]domain.DocumentRef, len(top))
	for i, doc := range top {
		refs[i] = domain.DocumentRef{ID: doc.ID, Title: doc.Title, Relevance: doc.Relevance}
	}

	return domain.Result{
		Type:     domain.CategorySearch,
		Query:    query,
		Response: s.complete(ctx, prompt, searchSystemPrompt),
		Metadata: domain.Metadata{
			ProcessingSteps: []string{"Document search", "Context preparation", "LLM query with context"},
			SearchResults:   refs,
		},
	}
}

func (s *Service) processSummarize(ctx context.Context, query string) domain.Result {
	topic := match.SummarizeTopic(query)
	matches := s.matcher.Search(topic)

	if len(matches) == 0 {
		result := s.processGeneral(ctx, query)
		result.Metadata.ProcessingSteps = append(result.Metadata.ProcessingSteps, "Document search (no results)")
		return result
	}

	top := matches
	if len(top) > contextDocs {
		top = top[:contextDocs]
	}

	content := ""
	for i, doc := range top {
		if i > 0 {
			content += "\n\n"
		}
		content += doc.Content
	}
	prompt := "Please summarize the following content:\n\n" + content

	refs := make([]domain.DocumentRef, len(top))
	for i, doc := range top {
		refs[i] = domain.DocumentRef{ID: doc.ID, Title: doc.Title}
	}

	return domain.Result{
		Type:     domain.CategorySummarize,
		Query:    query,
		Response: s.complete(ctx, prompt, summarizeSystemPrompt),
		Metadata: domain.Metadata{
			ProcessingSteps:     []string{"Document search", "Content preparation", "Summarization"},
			SummarizedDocuments: refs,
		},
	}
}

// complete calls the LLM and converts any failure into an error-prefixed
// response string. Degrade, not fail: upstream outages surface as content.
func (s *Service) complete(ctx context.Context, prompt, system string) string {
	text, err := s.llm.Generate(ctx, prompt, system)
	if err != nil {
		s.logger.Warn("LLM request failed", zap.Error(err))
		return "Error: " + err.Error()
	}
	return text
}

// contextBlock renders matched documents as a prompt context section.
func contextBlock(docs []domain.ScoredDocument) string {
	block := ""
	for i, doc := range docs {
		if i > 0 {
			block += "\n\n"
		}
		block += "Document: " + doc.Title + "\nContent: " + doc.Content
	}
	return block
}
