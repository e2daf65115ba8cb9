package domain

// Document is one file's worth of knowledge base content. Documents are
// loaded once per run and immutable thereafter; identity is the filename.
type Document struct {
	Filename string
	Content  string
}

// ScoredDocument pairs a document with its cosine similarity to the
// query, in [-1, 1].
type ScoredDocument struct {
	Document
	Score float64
}
