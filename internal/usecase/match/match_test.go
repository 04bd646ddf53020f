package match

import (
	"testing"

	"github.com/kailas-cloud/askflow/internal/domain"
)

func testDocs() []domain.Document {
	return []domain.Document{
		{ID: "a", Title: "Alpha", Content: "the quick brown fox"},
		{ID: "b", Title: "Beta", Content: "the lazy dog sleeps"},
		{ID: "c", Title: "Gamma", Content: "quick dogs and lazy foxes"},
	}
}

func TestSearch_RanksByOverlap(t *testing.T) {
	m := New(testDocs())

	results := m.Search("quick brown fox")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "a" {
		t.Errorf("expected doc a first, got %s", results[0].ID)
	}
	if results[0].Relevance != 1.0 {
		t.Errorf("expected relevance 1.0, got %f", results[0].Relevance)
	}
	if results[1].ID != "c" {
		t.Errorf("expected doc c second, got %s", results[1].ID)
	}
}

func TestSearch_ExcludesZeroOverlap(t *testing.T) {
	m := New(testDocs())

	for _, r := range m.Search("quantum entanglement") {
		t.Errorf("unexpected result %s with relevance %f", r.ID, r.Relevance)
	}
}

func TestSearch_RelevanceBounds(t *testing.T) {
	m := New(testDocs())

	for _, query := range []string{"the", "quick fox unrelated words here", "lazy dog"} {
		for _, r := range m.Search(query) {
			if r.Relevance <= 0 || r.Relevance > 1 {
				t.Errorf("query %q: relevance %f out of (0,1]", query, r.Relevance)
			}
		}
	}
}

func TestSearch_StableTieOrder(t *testing.T) {
	m := New(testDocs())

	// "the" appears in docs a and b with identical relevance; original order
	// must be preserved.
	results := m.Search("the")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "a" || results[1].ID != "b" {
		t.Errorf("tie order broken: got %s, %s", results[0].ID, results[1].ID)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	m := New(testDocs())

	first := m.Search("quick lazy")
	for i := 0; i < 10; i++ {
		again := m.Search("quick lazy")
		if len(again) != len(first) {
			t.Fatalf("run %d: got %d results, want %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].ID != first[j].ID {
				t.Fatalf("run %d: position %d got %s, want %s", i, j, again[j].ID, first[j].ID)
			}
		}
	}
}

func TestSearch_PunctuationOnlyQuery(t *testing.T) {
	m := New(testDocs())

	if results := m.Search("?!... --"); len(results) != 0 {
		t.Errorf("expected no matches for punctuation-only query, got %d", len(results))
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	m := New(testDocs())

	results := m.Search("QUICK BROWN FOX")
	if len(results) == 0 || results[0].ID != "a" {
		t.Fatalf("expected doc a for uppercase query, got %+v", results)
	}
}

func TestSearch_SampleCorpus(t *testing.T) {
	m := New(domain.SampleDocuments())

	results := m.Search("computer vision")
	if len(results) == 0 {
		t.Fatal("expected matches for computer vision")
	}
	if results[0].ID != "doc3" {
		t.Errorf("expected doc3 first, got %s", results[0].ID)
	}
	if results[0].Relevance <= 0 {
		t.Errorf("expected positive relevance, got %f", results[0].Relevance)
	}
}
