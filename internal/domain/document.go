package domain

// Document is a read-only record in the in-process corpus.
type Document struct {
	ID      string
	Title   string
	Content string
}

// ScoredDocument is a Document with a query relevance score in [0,1].
type ScoredDocument struct {
	Document
	Relevance float64
}

// SampleDocuments returns the built-in demo corpus. The slice is freshly
// allocated on each call so callers can hold it without synchronization.
func SampleDocuments() []Document {
	return []Document{
		{
			ID:    "doc1",
			Title: "Introduction to Machine Learning",
			Content: "Machine learning is a subset of artificial intelligence that provides systems " +
				"the ability to automatically learn and improve from experience without being explicitly " +
				"programmed. It focuses on the development of computer programs that can access data and " +
				"use it to learn for themselves.",
		},
		{
			ID:    "doc2",
			Title: "Natural Language Processing",
			Content: "Natural Language Processing (NLP) is a field of artificial intelligence that gives " +
				"computers the ability to understand text and spoken words in much the same way human " +
				"beings can. NLP combines computational linguistics with statistical, machine learning, " +
				"and deep learning models.",
		},
		{
			ID:    "doc3",
			Title: "Computer Vision",
			Content: "Computer vision is a field of artificial intelligence that trains computers to " +
				"interpret and understand the visual world. Using digital images from cameras and videos " +
				"and deep learning models, machines can accurately identify and classify objects and " +
				"then react to what they 'see'.",
		},
	}
}
