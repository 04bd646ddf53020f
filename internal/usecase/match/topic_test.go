package match

import "testing"

func TestSearchTopic(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"find prefix", "find information about machine learning", "information about machine learning"},
		{"search prefix", "search for computer vision", "for computer vision"},
		{"documents about prefix", "documents about natural language processing", "natural language processing"},
		{"information on prefix", "information on deep learning", "deep learning"},
		{"look for prefix", "could you look for NLP models", "NLP models"},
		{"trailing question mark", "find computer vision?", "computer vision"},
		{"uppercase trigger", "FIND Computer Vision", "Computer Vision"},
		{"no trigger", "machine learning basics", "machine learning basics"},
		{"no trigger trailing question mark", "machine learning?", "machine learning"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchTopic(tt.query); got != tt.want {
				t.Errorf("SearchTopic(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestSummarizeTopic(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"summarize tail wins", "summarize machine learning for me", "machine learning for me"},
		{"summarize mid-sentence", "please summarize natural language processing", "natural language processing"},
		{"summary trigger", "give me a summary of computer vision", "of computer vision"},
		{"brief overview trigger", "brief overview of NLP", "of NLP"},
		{"summarization trigger", "summarization of deep learning", "of deep learning"},
		{"no trigger", "computer vision", "computer vision"},
		{"uppercase", "SUMMARIZE Computer Vision", "Computer Vision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SummarizeTopic(tt.query); got != tt.want {
				t.Errorf("SummarizeTopic(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}
