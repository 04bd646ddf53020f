package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askflow/internal/domain"
	"github.com/kailas-cloud/askflow/internal/usecase/match"
)

// --- Mocks ---

type mockLLM struct {
	response   string
	err        error
	lastPrompt string
	lastSystem string
	calls      int
}

func (m *mockLLM) Generate(_ context.Context, prompt, system string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastSystem = system
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func newService(llm *mockLLM) *Service {
	return New(llm, match.New(domain.SampleDocuments()), zap.NewNop())
}

func stepsEqual(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// --- Tests ---

func TestProcess_General(t *testing.T) {
	llm := &mockLLM{response: "Paris."}
	svc := newService(llm)

	result := svc.Process(context.Background(), "What is the capital of France?")

	if result.Type != domain.CategoryGeneral {
		t.Errorf("expected type general, got %q", result.Type)
	}
	if result.Response != "Paris." {
		t.Errorf("unexpected response %q", result.Response)
	}
	if !stepsEqual(result.Metadata.ProcessingSteps, "LLM query") {
		t.Errorf("unexpected steps %v", result.Metadata.ProcessingSteps)
	}
	if llm.lastPrompt != "What is the capital of France?" {
		t.Errorf("general prompt must be the raw query, got %q", llm.lastPrompt)
	}
	if llm.lastSystem != generalSystemPrompt {
		t.Errorf("unexpected system prompt %q", llm.lastSystem)
	}
}

func TestProcess_SearchWithMatches(t *testing.T) {
	llm := &mockLLM{response: "Vision is..."}
	svc := newService(llm)

	query := "documents about computer vision"
	result := svc.Process(context.Background(), query)

	if result.Type != domain.CategorySearch {
		t.Fatalf("expected type search, got %q", result.Type)
	}
	if !stepsEqual(result.Metadata.ProcessingSteps,
		"Document search", "Context preparation", "LLM query with context") {
		t.Errorf("unexpected steps %v", result.Metadata.ProcessingSteps)
	}
	if len(result.Metadata.SearchResults) == 0 || len(result.Metadata.SearchResults) > 2 {
		t.Fatalf("expected 1..2 search results, got %d", len(result.Metadata.SearchResults))
	}
	if result.Metadata.SearchResults[0].ID != "doc3" {
		t.Errorf("expected doc3 first, got %s", result.Metadata.SearchResults[0].ID)
	}
	if result.Metadata.SearchResults[0].Relevance <= 0 {
		t.Errorf("expected positive relevance, got %f", result.Metadata.SearchResults[0].Relevance)
	}

	if !strings.HasPrefix(llm.lastPrompt, "Context:\n") {
		t.Errorf("prompt missing context header: %q", llm.lastPrompt)
	}
	if !strings.Contains(llm.lastPrompt, "Document: Computer Vision\nContent: ") {
		t.Errorf("prompt missing document block: %q", llm.lastPrompt)
	}
	if !strings.Contains(llm.lastPrompt, "\n\nQuestion: "+query+"\n\nAnswer:") {
		t.Errorf("prompt missing question section: %q", llm.lastPrompt)
	}
	if llm.lastSystem != searchSystemPrompt {
		t.Errorf("unexpected system prompt %q", llm.lastSystem)
	}
}

func TestProcess_SearchNoMatchFallsBackToGeneral(t *testing.T) {
	llm := &mockLLM{response: "general answer"}
	svc := newService(llm)

	query := "find quantum chromodynamics papers"
	result := svc.Process(context.Background(), query)

	// Bug-compatible: classification said search, but the fallback reuses
	// the general result wholesale, type tag included.
	if result.Type != domain.CategoryGeneral {
		t.Errorf("expected fallback type general, got %q", result.Type)
	}
	if !stepsEqual(result.Metadata.ProcessingSteps, "LLM query", "Document search (no results)") {
		t.Errorf("unexpected steps %v", result.Metadata.ProcessingSteps)
	}
	if len(result.Metadata.SearchResults) != 0 {
		t.Errorf("expected no search results, got %v", result.Metadata.SearchResults)
	}
	if llm.lastPrompt != query {
		t.Errorf("fallback must send the raw query, got %q", llm.lastPrompt)
	}
}

func TestProcess_SummarizeWithMatches(t *testing.T) {
	llm := &mockLLM{response: "A summary."}
	svc := newService(llm)

	result := svc.Process(context.Background(), "summarize machine learning")

	if result.Type != domain.CategorySummarize {
		t.Fatalf("expected type summarize, got %q", result.Type)
	}
	if !stepsEqual(result.Metadata.ProcessingSteps,
		"Document search", "Content preparation", "Summarization") {
		t.Errorf("unexpected steps %v", result.Metadata.ProcessingSteps)
	}
	if len(result.Metadata.SummarizedDocuments) == 0 || len(result.Metadata.SummarizedDocuments) > 2 {
		t.Fatalf("expected 1..2 summarized documents, got %d", len(result.Metadata.SummarizedDocuments))
	}
	for _, ref := range result.Metadata.SummarizedDocuments {
		if ref.Relevance != 0 {
			t.Errorf("summarized documents must not carry relevance, got %f", ref.Relevance)
		}
		if ref.ID == "" || ref.Title == "" {
			t.Errorf("incomplete document ref %+v", ref)
		}
	}

	if !strings.HasPrefix(llm.lastPrompt, "Please summarize the following content:\n\n") {
		t.Errorf("unexpected prompt prefix: %q", llm.lastPrompt)
	}
	if strings.Contains(llm.lastPrompt, "Document: ") {
		t.Errorf("summarize prompt must contain raw content, not titled blocks: %q", llm.lastPrompt)
	}
	if llm.lastSystem != summarizeSystemPrompt {
		t.Errorf("unexpected system prompt %q", llm.lastSystem)
	}
}

func TestProcess_SummarizeNoMatchFallsBackToGeneral(t *testing.T) {
	llm := &mockLLM{response: "general answer"}
	svc := newService(llm)

	result := svc.Process(context.Background(), "summarize quarterly earnings")

	if result.Type != domain.CategoryGeneral {
		t.Errorf("expected fallback type general, got %q", result.Type)
	}
	if !stepsEqual(result.Metadata.ProcessingSteps, "LLM query", "Document search (no results)") {
		t.Errorf("unexpected steps %v", result.Metadata.ProcessingSteps)
	}
}

func TestProcess_LLMFailureDegradesToErrorString(t *testing.T) {
	llm := &mockLLM{err: errors.New("connection refused")}
	svc := newService(llm)

	result := svc.Process(context.Background(), "What is NLP?")

	if !strings.HasPrefix(result.Response, "Error: ") {
		t.Errorf("expected error-prefixed response, got %q", result.Response)
	}
	if !strings.Contains(result.Response, "connection refused") {
		t.Errorf("expected failure reason in response, got %q", result.Response)
	}
	if result.Type != domain.CategoryGeneral {
		t.Errorf("expected type general, got %q", result.Type)
	}
}

func TestProcess_TopTwoDocumentsOnly(t *testing.T) {
	llm := &mockLLM{response: "ok"}
	svc := newService(llm)

	// "artificial intelligence" overlaps all three sample documents.
	result := svc.Process(context.Background(), "find artificial intelligence")

	if llm.calls != 1 {
		t.Fatalf("expected a single LLM call, got %d", llm.calls)
	}
	if len(result.Metadata.SearchResults) != 2 {
		t.Fatalf("expected exactly 2 search results, got %d", len(result.Metadata.SearchResults))
	}
}
